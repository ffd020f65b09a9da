package pipeline

import (
	"context"

	"forest-coverage/internal/logger"
)

// Logger is re-exported so callers only import this package.
type Logger = logger.Logger

type TimingTracker interface {
	StartTiming(operation string) context.Context
	EndTiming(ctx context.Context)
}
