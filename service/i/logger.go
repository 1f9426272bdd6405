package i

// Logger is the leveled logging capability injected into every stage of
// the system instead of referencing a global logger.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
