package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rezonia/dian-processor/internal/dian"
	"github.com/rezonia/dian-processor/internal/processor"
	"github.com/rezonia/dian-processor/internal/server"
	"github.com/rezonia/dian-processor/internal/signer"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server exposing the invoicing pipeline.

Endpoints:
  - POST /api/v1/invoices/validate - Validate an invoice
  - POST /api/v1/invoices/process  - Process a single invoice
  - POST /api/v1/invoices/batch    - Process a batch of invoices
  - GET  /health                   - Health check

Examples:
  # Start server on default port
  dian-processor serve

  # Start on custom port in debug mode
  dian-processor serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 5*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sgn, err := signer.New(cfg.SignatureMode, cfg.CertificatePath, cfg.CertificatePassword)
	if err != nil {
		return err
	}
	client := dian.NewClient(cfg.WebServiceURL, cfg.AuthToken)

	pipeline := processor.NewPipeline(cfg.Issuer(), sgn, client,
		processor.WithLogger(log.Logger),
	)

	srv := server.NewServer(&server.Config{
		Address:      serverAddr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}, pipeline)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	return srv.Run()
}
