package dianlib

import (
	"context"
	"time"

	"github.com/rezonia/dian-processor/internal/dian"
	"github.com/rezonia/dian-processor/internal/processor"
	"github.com/rezonia/dian-processor/internal/signer"
	"github.com/rezonia/dian-processor/internal/ubl"
	"github.com/rezonia/dian-processor/internal/validator"
)

// Signer produces a signed document from an unsigned one
type Signer = signer.Signer

// Options configures a Processor
type Options struct {
	Issuer Issuer

	// Keystore used for signing. SignatureMode selects the signature shape,
	// "detached" (default) or "enveloped". Signer, when set, replaces the
	// keystore-backed signer entirely.
	KeystorePath  string
	KeystorePass  string
	SignatureMode string
	Signer        Signer

	// Authority endpoint
	Endpoint  string
	AuthToken string
	Timeout   time.Duration

	// Workers bounds batch concurrency; zero means the default pool size.
	Workers int
}

// Processor runs invoices through the full pipeline
type Processor struct {
	pipeline *processor.Pipeline
	builder  *ubl.Builder
	issuer   Issuer
	workers  int
}

// NewProcessor creates a processor from the given options
func NewProcessor(opts Options) (*Processor, error) {
	sgn := opts.Signer
	if sgn == nil {
		var err error
		sgn, err = signer.New(opts.SignatureMode, opts.KeystorePath, opts.KeystorePass)
		if err != nil {
			return nil, err
		}
	}

	var clientOpts []dian.Option
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, dian.WithTimeout(opts.Timeout))
	}
	client := dian.NewClient(opts.Endpoint, opts.AuthToken, clientOpts...)

	// One builder serves both the pipeline and BuildXML.
	builder := ubl.NewBuilder()
	return &Processor{
		pipeline: processor.NewPipeline(opts.Issuer, sgn, client, processor.WithBuilder(builder)),
		builder:  builder,
		issuer:   opts.Issuer,
		workers:  opts.Workers,
	}, nil
}

// Validate checks an invoice against the business rules without processing
// it. It returns every problem found, not just the first.
func (p *Processor) Validate(inv *Invoice) (bool, []string) {
	return validator.Validate(inv)
}

// BuildXML generates the unsigned UBL 2.1 document for an invoice using the
// issuer the processor was created with.
func (p *Processor) BuildXML(inv *Invoice) (string, error) {
	return p.builder.Build(inv, p.issuer)
}

// Process runs one invoice through the pipeline. The returned result always
// describes the outcome; no error escapes.
func (p *Processor) Process(ctx context.Context, inv *Invoice) *ProcessingResult {
	return p.pipeline.Process(ctx, inv)
}

// ProcessBatch runs a batch through the bounded worker pool. Results are in
// completion order.
func (p *Processor) ProcessBatch(ctx context.Context, invoices []*Invoice) []*ProcessingResult {
	return p.pipeline.ProcessBatch(ctx, invoices, p.workers)
}
