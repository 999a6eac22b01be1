package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// AlertFunc receives failed jobs for escalation beyond the log.
type AlertFunc func(ctx context.Context, job *rivertype.JobRow, err error)

// AlertingErrorHandler reports job failures and panics. Email workers swallow
// transport errors, so anything landing here is a store problem worth noise.
type AlertingErrorHandler struct {
	Logger *slog.Logger
	Notify AlertFunc
}

func NewAlertingErrorHandler(logger *slog.Logger, notify AlertFunc) *AlertingErrorHandler {
	return &AlertingErrorHandler{Logger: logger, Notify: notify}
}

func (h *AlertingErrorHandler) HandleError(ctx context.Context, job *rivertype.JobRow, err error) *river.ErrorHandlerResult {
	h.report(ctx, job, err)
	return nil
}

func (h *AlertingErrorHandler) HandlePanic(ctx context.Context, job *rivertype.JobRow, panicVal any, trace string) *river.ErrorHandlerResult {
	h.report(ctx, job, fmt.Errorf("job panic: %v\n%s", panicVal, trace))
	return nil
}

func (h *AlertingErrorHandler) report(ctx context.Context, job *rivertype.JobRow, err error) {
	if h.Logger != nil {
		h.Logger.Error("job failed",
			"job_id", job.ID,
			"kind", job.Kind,
			"attempt", job.Attempt,
			"max_attempts", job.MaxAttempts,
			"error", err)
	}
	if h.Notify != nil {
		h.Notify(ctx, job, err)
	}
}
