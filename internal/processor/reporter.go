package processor

import (
	"github.com/rs/zerolog"

	"github.com/rezonia/dian-processor/internal/model"
)

// Reporter receives pipeline progress. Implementations must be safe for
// concurrent calls from multiple workers.
type Reporter interface {
	StateChanged(documentNumber string, state State)
	DocumentCompleted(result *model.ProcessingResult, done, total int)
	BatchCompleted(report Report)
}

// NopReporter discards all progress events
type NopReporter struct{}

func (NopReporter) StateChanged(string, State)                          {}
func (NopReporter) DocumentCompleted(*model.ProcessingResult, int, int) {}
func (NopReporter) BatchCompleted(Report)                               {}

// LogReporter emits progress as structured log events
type LogReporter struct {
	Log zerolog.Logger
}

func (r LogReporter) StateChanged(documentNumber string, state State) {
	r.Log.Debug().Str("invoice", documentNumber).Str("state", string(state)).Msg("state changed")
}

func (r LogReporter) DocumentCompleted(result *model.ProcessingResult, done, total int) {
	event := r.Log.Info()
	if !result.Success {
		event = r.Log.Error()
	}
	event.
		Str("invoice", result.InvoiceNumber).
		Bool("success", result.Success).
		Str("code", result.ResponseCode).
		Int("done", done).
		Int("total", total).
		Msg("document completed")
}

func (r LogReporter) BatchCompleted(report Report) {
	r.Log.Info().
		Int("total", report.Total).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Float64("success_rate", report.SuccessRate).
		Msg("batch report")
}
