package signer

import (
	"crypto/rsa"

	"github.com/beevik/etree"
	dsig "github.com/russellhaering/goxmldsig"

	"github.com/rezonia/dian-processor/internal/model"
)

// Enveloped produces a standards-complete XMLDSig enveloped signature with
// canonicalization, digest references and embedded certificate.
type Enveloped struct {
	ctx *dsig.SigningContext
}

// NewEnveloped creates an enveloped signer from a PKCS#12 keystore
func NewEnveloped(keystorePath, keystorePassword string) (*Enveloped, error) {
	key, cert, err := loadKeystore(keystorePath, keystorePassword)
	if err != nil {
		return nil, err
	}
	return NewEnvelopedFromKey(key, cert.Raw), nil
}

// NewEnvelopedFromKey creates an enveloped signer around an already-loaded
// RSA key and DER-encoded certificate.
func NewEnvelopedFromKey(key *rsa.PrivateKey, certDER []byte) *Enveloped {
	ks := &memoryKeyStore{key: key, cert: certDER}
	return &Enveloped{ctx: dsig.NewDefaultSigningContext(ks)}
}

// Sign implements Signer
func (s *Enveloped) Sign(xmlContent string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlContent); err != nil {
		return "", model.NewSignError(model.SignCodeSigningFailed, "cannot parse document", err)
	}
	root := doc.Root()
	if root == nil {
		return "", model.NewSignError(model.SignCodeSigningFailed, "document has no root element", nil)
	}

	signed, err := s.ctx.SignEnveloped(root)
	if err != nil {
		return "", model.NewSignError(model.SignCodeSigningFailed, "enveloped signing failed", err)
	}

	out := etree.NewDocument()
	out.SetRoot(signed)
	out.Indent(2)
	result, err := out.WriteToString()
	if err != nil {
		return "", model.NewSignError(model.SignCodeSigningFailed, "cannot serialize signed document", err)
	}
	return result, nil
}

// memoryKeyStore adapts a loaded key pair to goxmldsig's keystore interface.
type memoryKeyStore struct {
	key  *rsa.PrivateKey
	cert []byte
}

func (ks *memoryKeyStore) GetKeyPair() (*rsa.PrivateKey, []byte, error) {
	return ks.key, ks.cert, nil
}
