package linking

import (
	"context"

	"github.com/louisbranch/dossier/internal/platform/errors"
	errori18n "github.com/louisbranch/dossier/internal/platform/errors/i18n"
	"github.com/louisbranch/dossier/internal/platform/logging"
	"github.com/louisbranch/dossier/internal/platform/telemetry/metrics"
	"go.uber.org/zap"
)

// Notifier receives user-facing notices about link problems.
type Notifier interface {
	Notify(ctx context.Context, err *errors.Error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, err *errors.Error)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, err *errors.Error) {
	f(ctx, err)
}

// LogNotifier renders notices in Locale and writes them to Logger.
type LogNotifier struct {
	Logger *zap.Logger
	Locale string
}

// Notify logs err with its localized title and message. Codes that degrade
// to a default log at warn level; the rest log as errors.
func (n LogNotifier) Notify(_ context.Context, err *errors.Error) {
	if err == nil {
		return
	}
	metrics.WarningsTotal.WithLabelValues(string(err.Code)).Inc()
	notice := errori18n.Render(n.Locale, string(err.Code), err.Metadata)
	fields := []zap.Field{zap.String("code", string(err.Code)), zap.String("title", notice.Title)}
	for key, value := range err.Metadata {
		fields = append(fields, zap.String(key, value))
	}
	if err.Cause != nil {
		fields = append(fields, zap.Error(err.Cause))
	}
	logger := logging.OrNop(n.Logger)
	if err.Code.Recoverable() {
		logger.Warn(notice.Message, fields...)
		return
	}
	logger.Error(notice.Message, fields...)
}
