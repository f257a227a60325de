// Package report writes batch outcomes to files and renders the console
// summary table.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/rezonia/dian-processor/internal/model"
	"github.com/rezonia/dian-processor/internal/processor"
)

// resultRecord is the JSON shape of a single processed document.
// Processing time is reported in seconds.
type resultRecord struct {
	InvoiceNumber   string  `json:"invoice_number"`
	Success         bool    `json:"success"`
	ResponseCode    string  `json:"response_code,omitempty"`
	ResponseMessage string  `json:"response_message,omitempty"`
	DocumentUUID    string  `json:"document_uuid,omitempty"`
	ProcessingTime  float64 `json:"processing_time"`
	ErrorDetails    string  `json:"error_details,omitempty"`
}

// SortByDocumentNumber orders results in place. Batch results arrive in
// completion order, so callers wanting stable output sort first.
func SortByDocumentNumber(results []*model.ProcessingResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].InvoiceNumber < results[j].InvoiceNumber
	})
}

// WriteResultsJSON writes the per-document outcomes as a JSON array.
func WriteResultsJSON(w io.Writer, results []*model.ProcessingResult) error {
	records := make([]resultRecord, 0, len(results))
	for _, r := range results {
		records = append(records, resultRecord{
			InvoiceNumber:   r.InvoiceNumber,
			Success:         r.Success,
			ResponseCode:    r.ResponseCode,
			ResponseMessage: r.ResponseMessage,
			DocumentUUID:    r.DocumentUUID,
			ProcessingTime:  r.ProcessingTime.Seconds(),
			ErrorDetails:    r.ErrorDetails,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("cannot encode results: %w", err)
	}
	return nil
}

// SaveResultsJSON writes the outcome report to path, creating parent
// directories as needed.
func SaveResultsJSON(path string, results []*model.ProcessingResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create results file: %w", err)
	}
	defer f.Close()
	return WriteResultsJSON(f, results)
}

// SaveSignedDocuments writes the signed XML of every successful document to
// dir as <document_number>.xml. Failed documents are skipped.
func SaveSignedDocuments(dir string, results []*model.ProcessingResult) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("cannot create XML directory: %w", err)
	}

	saved := 0
	for _, r := range results {
		if !r.Success || r.SignedXML == "" {
			continue
		}
		path := filepath.Join(dir, r.InvoiceNumber+".xml")
		if err := os.WriteFile(path, []byte(r.SignedXML), 0o644); err != nil {
			return saved, fmt.Errorf("cannot write %s: %w", path, err)
		}
		saved++
	}
	return saved, nil
}

// RenderSummary prints the per-document table followed by the aggregate
// counts and rates.
func RenderSummary(w io.Writer, results []*model.ProcessingResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tSTATUS\tCODE\tUUID\tTIME")
	for _, r := range results {
		status := "OK"
		if !r.Success {
			status = "FAILED"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2fs\n",
			r.InvoiceNumber, status, r.ResponseCode, r.DocumentUUID, r.ProcessingTime.Seconds())
	}
	tw.Flush()

	summary := processor.Summarize(results)
	fmt.Fprintf(w, "\nTotal: %d  Succeeded: %d (%.1f%%)  Failed: %d (%.1f%%)  Avg: %.2fs\n",
		summary.Total,
		summary.Succeeded, summary.SuccessRate,
		summary.Failed, summary.FailureRate,
		summary.AverageTime.Seconds())
}
