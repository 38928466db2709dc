package provisioning

import "log"

// Observer receives progress and warning output from the phases. Warnings
// flag non-fatal degradations (skipped optional steps, lagging DNS
// propagation) that the operator should still see.
type Observer interface {
	Printf(format string, v ...any)
	Warnf(format string, v ...any)
}

// ConsoleObserver implements Observer on the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

func (o *ConsoleObserver) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

func (o *ConsoleObserver) Warnf(format string, v ...any) {
	log.Printf("WARNING: "+format, v...)
}
