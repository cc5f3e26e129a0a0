package tgmini

type Database interface {
	Close() error
	Migrate() error
}
