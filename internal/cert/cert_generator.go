package cert

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"time"

	"github.com/pkg/errors"
)

const (
	certificateBlockType = "CERTIFICATE"
	privateKeyBlockType  = "RSA PRIVATE KEY"
)

// Generate создает самоподписанный сертификат для локальных адресов и возвращает
// сертификат и закрытый ключ в формате PEM.
func Generate() (certPEM bytes.Buffer, privateKeyPEM bytes.Buffer, err error) {
	const (
		op         = "generate"
		years      = 1
		localhost  = "127.0.0.1"
		bits       = 2048
		serialBits = 127
	)

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), serialBits))
	if err != nil {
		err = errors.Wrap(err, op)
		return
	}
	serialNumber.Add(serialNumber, big.NewInt(1))

	cert := &x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{"Shortlink"},
			Country:      []string{"RU"},
		},
		DNSNames: []string{"localhost"},
		IPAddresses: []net.IP{
			net.ParseIP(localhost),
			net.IPv6loopback,
		},
		NotBefore: time.Now(),
		NotAfter:  time.Now().AddDate(years, 0, 0),
		ExtKeyUsage: []x509.ExtKeyUsage{
			x509.ExtKeyUsageServerAuth,
		},
		KeyUsage: x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		err = errors.Wrap(err, op)
		return
	}

	certBytes, err := x509.CreateCertificate(rand.Reader, cert, cert, &privateKey.PublicKey, privateKey)
	if err != nil {
		err = errors.Wrap(err, op)
		return
	}

	err = pem.Encode(&certPEM, &pem.Block{
		Type:  certificateBlockType,
		Bytes: certBytes,
	})
	if err != nil {
		err = errors.Wrap(err, op)
		return
	}

	err = pem.Encode(&privateKeyPEM, &pem.Block{
		Type:  privateKeyBlockType,
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
	if err != nil {
		err = errors.Wrap(err, op)
		return
	}

	return
}

// TLSConfig создает конфигурацию TLS с новым самоподписанным сертификатом.
func TLSConfig() (*tls.Config, error) {
	const op = "tls config"

	certPEM, privateKeyPEM, err := Generate()
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	pair, err := tls.X509KeyPair(certPEM.Bytes(), privateKeyPEM.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
