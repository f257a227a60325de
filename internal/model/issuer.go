package model

// Issuer identifies the organization emitting invoices. It is supplied by
// external configuration and embedded into every generated document.
type Issuer struct {
	NIT                    string
	BusinessName           string
	CommercialName         string
	Address                string
	City                   string
	State                  string
	CountryCode            string
	PostalCode             string
	Email                  string
	Phone                  string
	FiscalResponsibilities []string

	// SoftwareID is the authority-assigned software authorization identifier.
	SoftwareID      string
	SoftwareVersion string
}
