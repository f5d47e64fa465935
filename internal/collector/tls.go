package collector

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/phishguard/phishguard/internal/analyzer"
)

// freeIssuers holds lowercase fragments of certificate authorities that hand
// out certificates at no cost. Presence of one is a weak signal on its own
// but stacks with other indicators.
var freeIssuers = []string{
	"let's encrypt",
	"letsencrypt",
	"zerossl",
	"buypass",
	"cloudflare",
	"google trust services",
	"cpanel",
	"ssl.com free",
}

// TLSCollector performs a TLS handshake against port 443 and inspects the
// presented leaf certificate.
type TLSCollector struct {
	// Port defaults to "443".
	Port string
	// Roots overrides the system trust store, for tests.
	Roots *x509.CertPool
}

// Handshake implements analyzer.TLSCapability. Verification is done manually
// after the handshake so that a broken certificate still yields a finding
// instead of a connection error.
func (c *TLSCollector) Handshake(ctx context.Context, host string) (*analyzer.TLSFinding, error) {
	port := c.Port
	if port == "" {
		port = "443"
	}

	dialer := &tls.Dialer{
		Config: &tls.Config{
			ServerName:         host,
			InsecureSkipVerify: true, // #nosec G402 -- verified manually below
		},
	}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, fmt.Errorf("tls dial: %w", err)
	}
	defer conn.Close()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return nil, errors.New("tls dial: unexpected connection type")
	}
	state := tlsConn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, errors.New("tls handshake: no peer certificates")
	}

	return c.inspect(state.PeerCertificates, host, time.Now()), nil
}

func (c *TLSCollector) inspect(chain []*x509.Certificate, host string, now time.Time) *analyzer.TLSFinding {
	leaf := chain[0]
	return &analyzer.TLSFinding{
		Issuer:        issuerName(leaf),
		NotBefore:     leaf.NotBefore,
		NotAfter:      leaf.NotAfter,
		SelfSigned:    c.selfSigned(chain, now),
		DomainMatches: leaf.VerifyHostname(host) == nil,
		Expired:       now.Before(leaf.NotBefore) || now.After(leaf.NotAfter),
		FreeIssuer:    isFreeIssuer(issuerName(leaf)),
	}
}

// selfSigned reports whether the leaf signs itself or the chain does not
// anchor in a trusted root. Both cases mean the browser padlock would fail.
func (c *TLSCollector) selfSigned(chain []*x509.Certificate, now time.Time) bool {
	leaf := chain[0]
	if len(chain) == 1 && leaf.Subject.String() == leaf.Issuer.String() {
		return true
	}

	intermediates := x509.NewCertPool()
	for _, cert := range chain[1:] {
		intermediates.AddCert(cert)
	}
	_, err := leaf.Verify(x509.VerifyOptions{
		Roots:         c.Roots,
		Intermediates: intermediates,
		CurrentTime:   now,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	})
	if err == nil {
		return false
	}
	// Expiry is reported separately; only trust failures count here.
	var invalid x509.CertificateInvalidError
	if errors.As(err, &invalid) && invalid.Reason == x509.Expired {
		return false
	}
	return true
}

func issuerName(cert *x509.Certificate) string {
	if len(cert.Issuer.Organization) > 0 {
		return cert.Issuer.Organization[0]
	}
	return cert.Issuer.CommonName
}

func isFreeIssuer(issuer string) bool {
	lower := strings.ToLower(issuer)
	for _, fragment := range freeIssuers {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
