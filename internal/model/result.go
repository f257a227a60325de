package model

import "time"

// Acknowledgement is the parsed response returned by the authority endpoint.
type Acknowledgement struct {
	Success         bool   `json:"success"`
	ResponseCode    string `json:"response_code,omitempty"`
	ResponseMessage string `json:"response_message,omitempty"`
	DocumentUUID    string `json:"document_uuid,omitempty"`
	DocumentNumber  string `json:"document_number,omitempty"`

	// RawXML is the acknowledgement body exactly as received, preserved even
	// when parsing fails.
	RawXML string `json:"-"`
}

// ProcessingResult is the terminal outcome of one submission attempt.
// It is created exactly once per attempt and never mutated afterwards.
type ProcessingResult struct {
	InvoiceNumber   string
	Success         bool
	ResponseCode    string
	ResponseMessage string
	DocumentUUID    string
	ProcessingTime  time.Duration
	SignedXML       string
	ErrorDetails    string
}
