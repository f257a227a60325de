package server

// ValidationResponse is the response for the validate endpoint
type ValidationResponse struct {
	DocumentNumber string   `json:"document_number"`
	Valid          bool     `json:"valid"`
	Errors         []string `json:"errors,omitempty"`
}

// ResultResponse is the outcome of processing a single invoice.
// ProcessingTime is in seconds.
type ResultResponse struct {
	InvoiceNumber   string  `json:"invoice_number"`
	Success         bool    `json:"success"`
	ResponseCode    string  `json:"response_code,omitempty"`
	ResponseMessage string  `json:"response_message,omitempty"`
	DocumentUUID    string  `json:"document_uuid,omitempty"`
	ProcessingTime  float64 `json:"processing_time"`
	ErrorDetails    string  `json:"error_details,omitempty"`
}

// BatchResponse is the response for the batch endpoint
type BatchResponse struct {
	Total       int              `json:"total"`
	Succeeded   int              `json:"succeeded"`
	Failed      int              `json:"failed"`
	SuccessRate float64          `json:"success_rate"`
	AverageTime float64          `json:"average_time"`
	Results     []ResultResponse `json:"results"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
