// Package signer attaches digital signatures to UBL documents.
//
// Two implementations of the Signer capability exist. Detached reproduces the
// authority sandbox contract: hash the canonicalized document, sign the hash
// and append a signature element carrying only the base64 signature value.
// Enveloped produces a standards-complete XMLDSig envelope. The rest of the
// pipeline is indifferent to which one is plugged in.
package signer

// XMLDSig namespace
const XMLDSigNamespace = "http://www.w3.org/2000/09/xmldsig#"

// Signature modes selectable via configuration.
const (
	ModeDetached  = "detached"
	ModeEnveloped = "enveloped"
)

// Signer produces a signed document from an unsigned one
type Signer interface {
	Sign(xmlContent string) (string, error)
}

// New creates a signer for the given mode backed by a password-protected
// PKCS#12 keystore. Unknown modes fall back to detached.
func New(mode, keystorePath, keystorePassword string) (Signer, error) {
	if mode == ModeEnveloped {
		return NewEnveloped(keystorePath, keystorePassword)
	}
	return NewDetached(keystorePath, keystorePassword)
}
