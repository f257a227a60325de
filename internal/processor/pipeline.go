// Package processor runs the document pipeline: validate, build, sign, send,
// interpret. A batch orchestrator dispatches many invoices across a bounded
// worker pool and aggregates the outcomes.
package processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rezonia/dian-processor/internal/model"
	"github.com/rezonia/dian-processor/internal/signer"
	"github.com/rezonia/dian-processor/internal/ubl"
	"github.com/rezonia/dian-processor/internal/validator"
)

// State identifies where a document is in its pipeline
type State string

// Pipeline states. Every non-Interpreted terminal state maps to a failed
// ProcessingResult with a stage-specific code.
const (
	StatePending          State = "PENDING"
	StateValidating       State = "VALIDATING"
	StateValidationFailed State = "VALIDATION_FAILED"
	StateBuilding         State = "BUILDING"
	StateBuildFailed      State = "BUILD_FAILED"
	StateSigning          State = "SIGNING"
	StateSignFailed       State = "SIGN_FAILED"
	StateSending          State = "SENDING"
	StateTransmitFailed   State = "TRANSMIT_FAILED"
	StateSent             State = "SENT"
	StateInterpreted      State = "INTERPRETED"
)

// Sender submits a signed document and returns the parsed acknowledgement.
type Sender interface {
	Send(ctx context.Context, signedXML string) (*model.Acknowledgement, error)
}

// PipelineOption configures a Pipeline
type PipelineOption func(*Pipeline)

// WithBuilder replaces the document builder
func WithBuilder(b *ubl.Builder) PipelineOption {
	return func(p *Pipeline) {
		p.builder = b
	}
}

// WithReporter sets the progress sink
func WithReporter(r Reporter) PipelineOption {
	return func(p *Pipeline) {
		p.reporter = r
	}
}

// WithLogger sets the structured logger
func WithLogger(log zerolog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.log = log
	}
}

// Pipeline executes the full per-document flow. It is safe for concurrent
// use: invoices are read-only inputs and every run produces a fresh result.
type Pipeline struct {
	issuer   model.Issuer
	signer   signer.Signer
	sender   Sender
	builder  *ubl.Builder
	reporter Reporter
	log      zerolog.Logger
}

// NewPipeline creates a pipeline around the given issuer, signer and sender
func NewPipeline(issuer model.Issuer, sgn signer.Signer, sender Sender, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		issuer:   issuer,
		signer:   sgn,
		sender:   sender,
		builder:  ubl.NewBuilder(),
		reporter: NopReporter{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs one invoice through the pipeline. Stages short-circuit on
// failure; every terminal outcome becomes an immutable ProcessingResult and
// no error escapes to the caller.
func (p *Pipeline) Process(ctx context.Context, inv *model.Invoice) *model.ProcessingResult {
	start := time.Now()
	number := inv.DocumentNumber
	log := p.log.With().Str("invoice", number).Logger()

	p.transition(number, StateValidating)
	if ok, errs := validator.Validate(inv); !ok {
		log.Error().Strs("errors", errs).Msg("invoice failed validation")
		p.transition(number, StateValidationFailed)
		return p.failure(number, start, model.CodeValidationError,
			"validation errors: "+strings.Join(errs, ", "), nil)
	}

	p.transition(number, StateBuilding)
	xml, err := p.builder.Build(inv, p.issuer)
	if err != nil {
		log.Error().Err(err).Msg("document build failed")
		p.transition(number, StateBuildFailed)
		return p.failure(number, start, model.CodeBuildError, "document build failed", err)
	}

	p.transition(number, StateSigning)
	signedXML, err := p.signer.Sign(xml)
	if err != nil {
		log.Error().Err(err).Msg("signing failed")
		p.transition(number, StateSignFailed)
		return p.failure(number, start, model.CodeSignError, "signing failed", err)
	}

	p.transition(number, StateSending)
	ack, err := p.sender.Send(ctx, signedXML)
	if err != nil {
		log.Error().Err(err).Msg("transmission failed")
		p.transition(number, StateTransmitFailed)
		code := model.CodeUnknownError
		var txErr *model.TransmissionError
		if errors.As(err, &txErr) {
			code = txErr.Code
		}
		result := p.failure(number, start, code, "transmission failed", err)
		result.SignedXML = signedXML
		return result
	}
	p.transition(number, StateSent)

	p.transition(number, StateInterpreted)
	result := &model.ProcessingResult{
		InvoiceNumber:   number,
		Success:         ack.Success,
		ResponseCode:    ack.ResponseCode,
		ResponseMessage: ack.ResponseMessage,
		DocumentUUID:    ack.DocumentUUID,
		ProcessingTime:  time.Since(start),
		SignedXML:       signedXML,
	}
	if ack.Success {
		log.Info().Str("uuid", ack.DocumentUUID).Dur("elapsed", result.ProcessingTime).Msg("invoice processed")
	} else {
		log.Error().Str("code", ack.ResponseCode).Msg("invoice rejected by authority")
		result.ErrorDetails = ack.ResponseMessage
	}
	return result
}

func (p *Pipeline) transition(documentNumber string, state State) {
	p.reporter.StateChanged(documentNumber, state)
}

func (p *Pipeline) failure(number string, start time.Time, code, message string, cause error) *model.ProcessingResult {
	details := message
	if cause != nil {
		details = cause.Error()
	}
	return &model.ProcessingResult{
		InvoiceNumber:   number,
		Success:         false,
		ResponseCode:    code,
		ResponseMessage: message,
		ProcessingTime:  time.Since(start),
		ErrorDetails:    details,
	}
}
