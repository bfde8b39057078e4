package logger

// Interface is the logging seam every core component depends on, so tests
// and the MockLogger can stand in for the file-backed Logger.
type Interface interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

var (
	_ Interface = (*Logger)(nil)
	_ Interface = (*MockLogger)(nil)
)
