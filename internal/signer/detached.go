package signer

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"

	"github.com/beevik/etree"

	"github.com/rezonia/dian-processor/internal/model"
)

// Detached signs the SHA-256 digest of the canonicalized document with
// RSA PKCS#1 v1.5 and appends a ds:Signature element carrying only the
// base64 signature value. It embeds no key material or reference list.
type Detached struct {
	key  *rsa.PrivateKey
	cert *x509.Certificate
}

// NewDetached creates a detached signer from a PKCS#12 keystore
func NewDetached(keystorePath, keystorePassword string) (*Detached, error) {
	key, cert, err := loadKeystore(keystorePath, keystorePassword)
	if err != nil {
		return nil, err
	}
	return &Detached{key: key, cert: cert}, nil
}

// NewDetachedFromKey creates a detached signer around an already-loaded key.
// Used by tests and callers that manage key material themselves.
func NewDetachedFromKey(key *rsa.PrivateKey) *Detached {
	return &Detached{key: key}
}

// Sign implements Signer
func (s *Detached) Sign(xmlContent string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlContent); err != nil {
		return "", model.NewSignError(model.SignCodeSigningFailed, "cannot parse document", err)
	}
	root := doc.Root()
	if root == nil {
		return "", model.NewSignError(model.SignCodeSigningFailed, "document has no root element", nil)
	}

	digest, err := CanonicalDigest(root)
	if err != nil {
		return "", err
	}

	signature, err := rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA256, digest)
	if err != nil {
		return "", model.NewSignError(model.SignCodeSigningFailed, "signing operation failed", err)
	}

	sigEl := root.CreateElement("ds:Signature")
	sigEl.CreateAttr("xmlns:ds", XMLDSigNamespace)
	signedInfo := sigEl.CreateElement("ds:SignedInfo")
	value := signedInfo.CreateElement("ds:SignatureValue")
	value.SetText(base64.StdEncoding.EncodeToString(signature))

	doc.Indent(2)
	signed, err := doc.WriteToString()
	if err != nil {
		return "", model.NewSignError(model.SignCodeSigningFailed, "cannot serialize signed document", err)
	}
	return signed, nil
}

// CanonicalDigest returns the SHA-256 digest of the element serialized in
// canonical form. This is the exact content the detached signature covers.
func CanonicalDigest(el *etree.Element) ([]byte, error) {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	doc.WriteSettings = etree.WriteSettings{
		CanonicalEndTags: true,
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}

	canonical, err := doc.WriteToBytes()
	if err != nil {
		return nil, model.NewSignError(model.SignCodeSigningFailed, "canonicalization failed", err)
	}
	digest := sha256.Sum256(canonical)
	return digest[:], nil
}
