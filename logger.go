package tgmini

// Logger is satisfied by *log.Logger from charmbracelet/log. Arguments after
// the message are alternating key/value pairs.
type Logger interface {
	Debug(interface{}, ...interface{})
	Info(interface{}, ...interface{})
	Warn(interface{}, ...interface{})
	Error(interface{}, ...interface{})
	Fatal(interface{}, ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Info(interface{}, ...interface{})  {}
func (nopLogger) Warn(interface{}, ...interface{})  {}
func (nopLogger) Error(interface{}, ...interface{}) {}
func (nopLogger) Fatal(interface{}, ...interface{}) {}

// NopLogger discards everything. Used when a component is built without a logger.
var NopLogger Logger = nopLogger{}
