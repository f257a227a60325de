package signer_test

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"math/big"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/dian-processor/internal/model"
	"github.com/rezonia/dian-processor/internal/signer"
)

const unsignedDoc = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2">
  <ID>FAC001</ID>
  <IssueDate>2024-01-15</IssueDate>
</Invoice>`

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestDetached_SignAppendsSignatureValue(t *testing.T) {
	s := signer.NewDetachedFromKey(testKey(t))

	signed, err := s.Sign(unsignedDoc)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(signed))

	sig := doc.FindElement("//ds:Signature")
	require.NotNil(t, sig, "signed document must carry a ds:Signature element")
	assert.Equal(t, signer.XMLDSigNamespace, sig.SelectAttrValue("xmlns:ds", ""))

	value := sig.FindElement("ds:SignedInfo/ds:SignatureValue")
	require.NotNil(t, value)
	assert.NotEmpty(t, value.Text())
}

func TestDetached_SignatureVerifies(t *testing.T) {
	key := testKey(t)
	s := signer.NewDetachedFromKey(key)

	signed, err := s.Sign(unsignedDoc)
	require.NoError(t, err)

	// Recompute the digest the signature covers: the canonical form of the
	// document before the signature element was appended.
	original := etree.NewDocument()
	require.NoError(t, original.ReadFromString(unsignedDoc))
	digest, err := signer.CanonicalDigest(original.Root())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(signed))
	value := doc.FindElement("//ds:Signature/ds:SignedInfo/ds:SignatureValue")
	require.NotNil(t, value)

	sigBytes, err := base64.StdEncoding.DecodeString(value.Text())
	require.NoError(t, err)

	err = rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, digest, sigBytes)
	assert.NoError(t, err, "signature must verify against the canonical digest")
}

func TestDetached_PreservesDocumentContent(t *testing.T) {
	s := signer.NewDetachedFromKey(testKey(t))

	signed, err := s.Sign(unsignedDoc)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(signed))
	assert.Equal(t, "FAC001", doc.FindElement("//ID").Text())
	assert.Equal(t, "2024-01-15", doc.FindElement("//IssueDate").Text())
}

func TestDetached_InvalidXML(t *testing.T) {
	s := signer.NewDetachedFromKey(testKey(t))

	_, err := s.Sign("not xml at all <<<")
	require.Error(t, err)

	var signErr *model.SignError
	require.ErrorAs(t, err, &signErr)
	assert.Equal(t, model.SignCodeSigningFailed, signErr.Code)
}

func TestNewDetached_MissingKeystore(t *testing.T) {
	_, err := signer.NewDetached("/nonexistent/cert.p12", "secret")
	require.Error(t, err)

	var signErr *model.SignError
	require.ErrorAs(t, err, &signErr)
	assert.Equal(t, model.SignCodeKeystoreOpen, signErr.Code)
}

func TestEnveloped_SignProducesXMLDSigEnvelope(t *testing.T) {
	key := testKey(t)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "EMISOR DE PRUEBA SAS"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)

	s := signer.NewEnvelopedFromKey(key, certDER)

	signed, err := s.Sign(unsignedDoc)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(signed))

	sig := doc.FindElement("//ds:Signature")
	require.NotNil(t, sig, "enveloped signature element missing")
	assert.NotNil(t, sig.FindElement("ds:SignedInfo/ds:SignatureMethod"))
	assert.NotNil(t, sig.FindElement("ds:SignedInfo/ds:Reference/ds:DigestValue"))
	assert.NotNil(t, sig.FindElement("ds:KeyInfo/ds:X509Data/ds:X509Certificate"))
}

func TestNew_SelectsMode(t *testing.T) {
	// Both modes surface keystore errors through the common constructor.
	_, err := signer.New(signer.ModeDetached, "/missing.p12", "pw")
	require.Error(t, err)

	_, err = signer.New(signer.ModeEnveloped, "/missing.p12", "pw")
	require.Error(t, err)
}
