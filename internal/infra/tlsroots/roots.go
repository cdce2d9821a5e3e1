package tlsroots

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// ErrNoCertsFound is returned when PEM data holds no certificate.
var ErrNoCertsFound = errors.New("tlsroots: no certificates found")

// Pool is a set of trusted roots.
type Pool struct {
	certs *x509.CertPool
}

// NewPool starts from the system roots, or an empty set where the platform
// has none.
func NewPool() *Pool {
	certs, err := x509.SystemCertPool()
	if err != nil || certs == nil {
		certs = x509.NewCertPool()
	}
	return &Pool{certs: certs}
}

// AddFile adds every certificate in a PEM file.
func (p *Pool) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tlsroots: read %s: %w", path, err)
	}
	if err := p.AddPEM(data); err != nil {
		return fmt.Errorf("tlsroots: %s: %w", path, err)
	}
	return nil
}

// AddPEM adds every CERTIFICATE block in data; other blocks are skipped.
func (p *Pool) AddPEM(data []byte) error {
	added := 0
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return fmt.Errorf("parse certificate: %w", err)
		}
		p.certs.AddCert(cert)
		added++
	}
	if added == 0 {
		return ErrNoCertsFound
	}
	return nil
}

// CertPool returns the underlying pool.
func (p *Pool) CertPool() *x509.CertPool {
	return p.certs
}

// ClientConfig returns TLS settings trusting the system roots and caFile.
func ClientConfig(caFile string, insecure bool) (*tls.Config, error) {
	p := NewPool()
	if caFile != "" {
		if err := p.AddFile(caFile); err != nil {
			return nil, err
		}
	}
	return &tls.Config{
		RootCAs:            p.certs,
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: insecure,
	}, nil
}
