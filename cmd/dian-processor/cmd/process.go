package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rezonia/dian-processor/internal/config"
	"github.com/rezonia/dian-processor/internal/dian"
	"github.com/rezonia/dian-processor/internal/loader"
	"github.com/rezonia/dian-processor/internal/model"
	"github.com/rezonia/dian-processor/internal/pdf"
	"github.com/rezonia/dian-processor/internal/processor"
	"github.com/rezonia/dian-processor/internal/report"
	"github.com/rezonia/dian-processor/internal/signer"
	"github.com/rezonia/dian-processor/internal/validator"
)

var (
	inputFile    string
	outputFile   string
	workers      int
	validateOnly bool
	xmlDir       string
	pdfDir       string
	sortResults  bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a batch of invoices",
	Long: `Load invoices from a JSON or CSV file and run each through the full
pipeline: validate, build the UBL 2.1 document, sign, transmit and
interpret the acknowledgement.

Examples:
  dian-processor process -i invoices.json
  dian-processor process -i invoices.csv --workers 5 -o results.json
  dian-processor process -i invoices.json --validate-only
  dian-processor process -i invoices.json --xml-dir signed/ --pdf-dir pdfs/`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (.json or .csv)")
	processCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the results report to this JSON file")
	processCmd.Flags().IntVar(&workers, "workers", processor.DefaultWorkers, "Concurrent workers")
	processCmd.Flags().BoolVar(&validateOnly, "validate-only", false, "Validate invoices without sending")
	processCmd.Flags().StringVar(&xmlDir, "xml-dir", "", "Save signed XML documents to this directory")
	processCmd.Flags().StringVar(&pdfDir, "pdf-dir", "", "Render invoice PDFs to this directory")
	processCmd.Flags().BoolVar(&sortResults, "sort", false, "Sort results by document number")
	_ = processCmd.MarkFlagRequired("input")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	invoices, err := loader.FromFile(inputFile)
	if err != nil {
		return err
	}
	if len(invoices) == 0 {
		return fmt.Errorf("no invoices found in %s", inputFile)
	}
	log.Info().Int("count", len(invoices)).Str("input", inputFile).Msg("invoices loaded")

	if validateOnly {
		return runValidateOnly(invoices)
	}

	// Nothing is dispatched against a half-configured environment.
	if problems := cfg.ValidateEnvironment(); len(problems) > 0 {
		for _, p := range problems {
			log.Error().Msg(p)
		}
		return fmt.Errorf("environment is not ready for transmission: %s", strings.Join(problems, "; "))
	}

	sgn, err := signer.New(cfg.SignatureMode, cfg.CertificatePath, cfg.CertificatePassword)
	if err != nil {
		return err
	}
	client := dian.NewClient(cfg.WebServiceURL, cfg.AuthToken)

	pipeline := processor.NewPipeline(cfg.Issuer(), sgn, client,
		processor.WithReporter(processor.LogReporter{Log: log.Logger}),
		processor.WithLogger(log.Logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results := pipeline.ProcessBatch(ctx, invoices, workers)
	if sortResults {
		report.SortByDocumentNumber(results)
	}

	report.RenderSummary(os.Stdout, results)

	if outputFile != "" {
		if err := report.SaveResultsJSON(outputFile, results); err != nil {
			return err
		}
		fmt.Printf("Results written to %s\n", outputFile)
	}
	if xmlDir != "" {
		saved, err := report.SaveSignedDocuments(xmlDir, results)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %d signed documents to %s\n", saved, xmlDir)
	}
	if pdfDir != "" {
		if err := renderPDFs(invoices, cfg); err != nil {
			return err
		}
	}
	return nil
}

func runValidateOnly(invoices []*model.Invoice) error {
	failed := 0
	for _, inv := range invoices {
		valid, errs := validator.Validate(inv)
		if valid {
			fmt.Printf("%s: OK\n", inv.DocumentNumber)
			continue
		}
		failed++
		fmt.Printf("%s: INVALID\n", inv.DocumentNumber)
		for _, e := range errs {
			fmt.Printf("  - %s\n", e)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d invoices failed validation", failed, len(invoices))
	}
	fmt.Printf("All %d invoices are valid\n", len(invoices))
	return nil
}

func renderPDFs(invoices []*model.Invoice, cfg *config.Config) error {
	if err := os.MkdirAll(pdfDir, 0o755); err != nil {
		return fmt.Errorf("cannot create PDF directory: %w", err)
	}
	issuer := cfg.Issuer()
	for _, inv := range invoices {
		path := filepath.Join(pdfDir, inv.DocumentNumber+".pdf")
		if err := pdf.Save(path, inv, issuer); err != nil {
			return err
		}
	}
	fmt.Printf("Rendered %d PDFs to %s\n", len(invoices), pdfDir)
	return nil
}
