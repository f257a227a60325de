package signer

import (
	"crypto/rsa"
	"crypto/x509"
	"os"

	"golang.org/x/crypto/pkcs12"

	"github.com/rezonia/dian-processor/internal/model"
)

// loadKeystore opens and decrypts a PKCS#12 keystore, returning the RSA
// private key and signing certificate.
func loadKeystore(path, password string) (*rsa.PrivateKey, *x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, model.NewSignError(model.SignCodeKeystoreOpen, "cannot open keystore "+path, err)
	}

	key, cert, err := pkcs12.Decode(data, password)
	if err != nil {
		return nil, nil, model.NewSignError(model.SignCodeKeystoreDecrypt, "cannot decrypt keystore", err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, nil, model.NewSignError(model.SignCodeSigningFailed, "keystore does not contain an RSA private key", nil)
	}
	return rsaKey, cert, nil
}
