package quiz

type State int

const (
	NotStarted State = iota
	InProgress
	AwaitingAnswer
	AllAnswered
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NOT_STARTED"
	case InProgress:
		return "IN_PROGRESS"
	case AwaitingAnswer:
		return "AWAITING_ANSWER"
	case AllAnswered:
		return "ALL_ANSWERED"
	case Finished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}
