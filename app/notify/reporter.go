package notify

import (
	"context"
	"log/slog"
)

// ErrorReporter sends run failures to the operator through the same
// SMS channel used for announcement alerts, so a broken scrape is
// noticed without watching logs.
type ErrorReporter struct {
	agent     Agent
	recipient string
}

func NewErrorReporter(agent Agent, recipient string) *ErrorReporter {
	return &ErrorReporter{agent: agent, recipient: recipient}
}

// Report is best-effort: a failure to report is logged and swallowed,
// the run is already failing.
func (r *ErrorReporter) Report(ctx context.Context, message string) {
	if r.recipient == "" {
		slog.Warn("No error report recipient configured, skipping")
		return
	}
	sent, err := r.agent.Send(ctx, message, []string{r.recipient})
	if err != nil {
		slog.Error("Failed to report error through gateway", "error", err)
		return
	}
	slog.Info("Reported failure through gateway", "accepted", sent)
}
