// Package config loads pipeline settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/rezonia/dian-processor/internal/model"
	"github.com/rezonia/dian-processor/internal/signer"
)

// Authority environments.
const (
	EnvHabilitacion = "HABILITACION"
	EnvProduccion   = "PRODUCCION"
)

// Config is the full runtime configuration. Every field maps to a DIAN_* or
// LOG_* environment variable; Load fills defaults for the optional ones.
type Config struct {
	IssuerNIT                    string `validate:"required"`
	IssuerBusinessName           string `validate:"required"`
	IssuerCommercialName         string
	IssuerAddress                string `validate:"required"`
	IssuerCity                   string
	IssuerState                  string
	IssuerCountryCode            string
	IssuerPostalCode             string
	IssuerEmail                  string `validate:"omitempty,email"`
	IssuerPhone                  string
	IssuerFiscalResponsibilities []string

	SoftwareID      string `validate:"required"`
	SoftwareVersion string

	Environment         string `validate:"required,oneof=HABILITACION PRODUCCION"`
	CertificatePath     string
	CertificatePassword string
	WebServiceURL       string `validate:"omitempty,url"`
	AuthToken           string
	SignatureMode       string `validate:"oneof=detached enveloped"`

	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. If envFile is non-empty it
// is loaded first; a missing default .env is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("cannot load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		IssuerNIT:            os.Getenv("DIAN_ISSUER_NIT"),
		IssuerBusinessName:   os.Getenv("DIAN_ISSUER_BUSINESS_NAME"),
		IssuerCommercialName: os.Getenv("DIAN_ISSUER_COMMERCIAL_NAME"),
		IssuerAddress:        os.Getenv("DIAN_ISSUER_ADDRESS"),
		IssuerCity:           getenv("DIAN_ISSUER_CITY", "Bogotá"),
		IssuerState:          getenv("DIAN_ISSUER_STATE", "Cundinamarca"),
		IssuerCountryCode:    getenv("DIAN_ISSUER_COUNTRY_CODE", model.DefaultCountryCode),
		IssuerPostalCode:     os.Getenv("DIAN_ISSUER_POSTAL_CODE"),
		IssuerEmail:          os.Getenv("DIAN_ISSUER_EMAIL"),
		IssuerPhone:          os.Getenv("DIAN_ISSUER_PHONE"),

		SoftwareID:      os.Getenv("DIAN_SOFTWARE_ID"),
		SoftwareVersion: getenv("DIAN_SOFTWARE_VERSION", "1.0"),

		Environment:         getenv("DIAN_ENVIRONMENT", EnvHabilitacion),
		CertificatePath:     os.Getenv("DIAN_CERTIFICATE_PATH"),
		CertificatePassword: os.Getenv("DIAN_CERTIFICATE_PASSWORD"),
		WebServiceURL:       os.Getenv("DIAN_WS_URL"),
		AuthToken:           os.Getenv("DIAN_AUTH_TOKEN"),
		SignatureMode:       getenv("DIAN_SIGNATURE_MODE", signer.ModeDetached),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "console"),
	}

	if raw := os.Getenv("DIAN_ISSUER_FISCAL_RESPONSIBILITIES"); raw != "" {
		for _, r := range strings.Split(raw, ",") {
			if r = strings.TrimSpace(r); r != "" {
				cfg.IssuerFiscalResponsibilities = append(cfg.IssuerFiscalResponsibilities, r)
			}
		}
	} else {
		cfg.IssuerFiscalResponsibilities = []string{"O-13"}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Issuer builds the issuer entity embedded in every generated document.
func (c *Config) Issuer() model.Issuer {
	return model.Issuer{
		NIT:                    c.IssuerNIT,
		BusinessName:           c.IssuerBusinessName,
		CommercialName:         c.IssuerCommercialName,
		Address:                c.IssuerAddress,
		City:                   c.IssuerCity,
		State:                  c.IssuerState,
		CountryCode:            c.IssuerCountryCode,
		PostalCode:             c.IssuerPostalCode,
		Email:                  c.IssuerEmail,
		Phone:                  c.IssuerPhone,
		FiscalResponsibilities: c.IssuerFiscalResponsibilities,
		SoftwareID:             c.SoftwareID,
		SoftwareVersion:        c.SoftwareVersion,
	}
}

// ValidateEnvironment checks the settings needed to actually transmit
// documents, beyond the structural checks Load performs. It accumulates all
// problems instead of stopping at the first.
func (c *Config) ValidateEnvironment() []string {
	var problems []string

	if c.CertificatePath == "" {
		problems = append(problems, "DIAN_CERTIFICATE_PATH is not set")
	} else if _, err := os.Stat(c.CertificatePath); err != nil {
		problems = append(problems, fmt.Sprintf("certificate not found at %s", c.CertificatePath))
	}
	if c.WebServiceURL == "" {
		problems = append(problems, "DIAN_WS_URL is not set")
	}
	if c.AuthToken == "" || c.AuthToken == "dummy-token" {
		problems = append(problems, "DIAN_AUTH_TOKEN is not set to a real token")
	}
	if c.Environment == EnvProduccion && c.CertificatePassword == "" {
		problems = append(problems, "DIAN_CERTIFICATE_PASSWORD is required in PRODUCCION")
	}

	return problems
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
