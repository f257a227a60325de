package processor

import (
	"context"
	"sync"
	"time"

	"github.com/rezonia/dian-processor/internal/model"
)

// DefaultWorkers is the batch worker pool width when the caller does not
// choose one.
const DefaultWorkers = 3

// Report aggregates a completed batch
type Report struct {
	Total       int
	Succeeded   int
	Failed      int
	SuccessRate float64
	FailureRate float64
	AverageTime time.Duration
}

// ProcessBatch runs every invoice through the pipeline using a bounded pool
// of workers. Workers push each terminal result onto a completion channel; a
// single aggregator owned by this call collects them, so no locking guards
// the result slice. Results arrive in completion order, which is not
// deterministic for workers > 1.
//
// A single document's failure never aborts the batch. Cancelling ctx stops
// dispatching queued invoices; already-dispatched documents finish (their
// sends fail fast with the cancelled context).
func (p *Pipeline) ProcessBatch(ctx context.Context, invoices []*model.Invoice, workers int) []*model.ProcessingResult {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if workers > len(invoices) && len(invoices) > 0 {
		workers = len(invoices)
	}

	jobs := make(chan *model.Invoice)
	completions := make(chan *model.ProcessingResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for inv := range jobs {
				completions <- p.Process(ctx, inv)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, inv := range invoices {
			select {
			case jobs <- inv:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(completions)
	}()

	total := len(invoices)
	results := make([]*model.ProcessingResult, 0, total)
	for result := range completions {
		results = append(results, result)
		p.reporter.DocumentCompleted(result, len(results), total)
	}

	report := Summarize(results)
	p.reporter.BatchCompleted(report)
	p.log.Info().
		Int("total", report.Total).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Dur("avg_time", report.AverageTime).
		Msg("batch completed")

	return results
}

// Summarize computes the aggregate report for a set of results
func Summarize(results []*model.ProcessingResult) Report {
	report := Report{Total: len(results)}
	if report.Total == 0 {
		return report
	}

	var elapsed time.Duration
	for _, r := range results {
		if r.Success {
			report.Succeeded++
		} else {
			report.Failed++
		}
		elapsed += r.ProcessingTime
	}
	report.SuccessRate = float64(report.Succeeded) / float64(report.Total) * 100
	report.FailureRate = float64(report.Failed) / float64(report.Total) * 100
	report.AverageTime = elapsed / time.Duration(report.Total)
	return report
}
