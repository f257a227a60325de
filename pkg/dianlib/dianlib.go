// Package dianlib provides a public API for processing Colombian electronic
// invoices.
//
// This package exposes the core types and a Processor that runs the full
// pipeline: validate, build the UBL 2.1 document, sign, transmit to the
// authority endpoint and interpret the acknowledgement.
//
// Example usage:
//
//	proc, err := dianlib.NewProcessor(dianlib.Options{
//	    Issuer:       issuer,
//	    KeystorePath: "cert.p12",
//	    KeystorePass: "secret",
//	    Endpoint:     "https://vpfe.dian.gov.co/api",
//	    AuthToken:    token,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := proc.Process(ctx, invoice)
//	fmt.Println(result.Success, result.DocumentUUID)
package dianlib

import "github.com/rezonia/dian-processor/internal/model"

// Re-export core types for public API
type (
	Invoice          = model.Invoice
	LineItem         = model.LineItem
	Customer         = model.Customer
	Issuer           = model.Issuer
	Acknowledgement  = model.Acknowledgement
	ProcessingResult = model.ProcessingResult
	CustomerType     = model.CustomerType
)

// Re-export customer types
const (
	CustomerLegalEntity   = model.CustomerLegalEntity
	CustomerNaturalPerson = model.CustomerNaturalPerson
)

// Re-export outcome codes
const (
	CodeValidationError = model.CodeValidationError
	CodeBuildError      = model.CodeBuildError
	CodeSignError       = model.CodeSignError
	CodeTimeout         = model.CodeTimeout
	CodeConnectionError = model.CodeConnectionError
	CodeUnknownError    = model.CodeUnknownError
)

// Re-export error types
type (
	ValidationError   = model.ValidationError
	BuildError        = model.BuildError
	SignError         = model.SignError
	TransmissionError = model.TransmissionError
)
