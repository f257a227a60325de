// Package loader reads invoice batches from JSON and CSV files.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rezonia/dian-processor/internal/model"
)

// FromFile loads invoices from a JSON or CSV file, selected by extension.
func FromFile(path string) ([]*model.Invoice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FromJSON(f)
	case ".csv":
		return FromCSV(f)
	default:
		return nil, fmt.Errorf("unsupported input format %q, use .json or .csv", filepath.Ext(path))
	}
}

// FromJSON decodes an array of invoice objects. Numeric fields accept both
// JSON numbers and strings.
func FromJSON(r io.Reader) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	dec := json.NewDecoder(r)
	if err := dec.Decode(&invoices); err != nil {
		return nil, fmt.Errorf("cannot decode invoice JSON: %w", err)
	}
	for _, inv := range invoices {
		inv.ApplyDefaults()
	}
	return invoices, nil
}
