package logger

import "go.uber.org/zap"

// New builds the process-wide zap logger. Constructed once in main and
// injected; components never reach for a package-level logger.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
