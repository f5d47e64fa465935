package collector

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"
)

type testCert struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
}

func newTestCA(t *testing.T) testCert {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{Organization: []string{"Test Root CA"}},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatal(err)
	}
	return testCert{cert: cert, key: key}
}

func newLeafCert(t *testing.T, ca testCert, host, issuerOrg string, notBefore, notAfter time.Time) *x509.Certificate {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	template := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: host},
		DNSNames:     []string{host},
		NotBefore:    notBefore,
		NotAfter:     notAfter,
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	parent := ca.cert
	signer := ca.key
	if parent == nil {
		// Self-signed.
		template.Subject.Organization = []string{issuerOrg}
		parent = template
		signer = key
	}
	der, err := x509.CreateCertificate(rand.Reader, template, parent, &key.PublicKey, signer)
	if err != nil {
		t.Fatal(err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatal(err)
	}
	return cert
}

func TestInspectSelfSignedCertificate(t *testing.T) {
	leaf := newLeafCert(t, testCert{}, "evil.test", "Evil Org",
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	collector := &TLSCollector{Roots: x509.NewCertPool()}
	finding := collector.inspect([]*x509.Certificate{leaf}, "evil.test", time.Now())

	if !finding.SelfSigned {
		t.Error("SelfSigned = false, want true")
	}
	if !finding.DomainMatches {
		t.Error("DomainMatches = false, want true")
	}
	if finding.Expired {
		t.Error("Expired = true, want false")
	}
}

func TestInspectTrustedCertificate(t *testing.T) {
	ca := newTestCA(t)
	leaf := newLeafCert(t, ca, "shop.example.net", "",
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	roots := x509.NewCertPool()
	roots.AddCert(ca.cert)
	collector := &TLSCollector{Roots: roots}

	finding := collector.inspect([]*x509.Certificate{leaf, ca.cert}, "shop.example.net", time.Now())
	if finding.SelfSigned {
		t.Error("SelfSigned = true for a CA-signed chain, want false")
	}
	if !finding.DomainMatches {
		t.Error("DomainMatches = false, want true")
	}
	if finding.Issuer != "Test Root CA" {
		t.Errorf("Issuer = %q, want %q", finding.Issuer, "Test Root CA")
	}
}

func TestInspectHostnameMismatch(t *testing.T) {
	ca := newTestCA(t)
	leaf := newLeafCert(t, ca, "other.example.net", "",
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

	roots := x509.NewCertPool()
	roots.AddCert(ca.cert)
	collector := &TLSCollector{Roots: roots}

	finding := collector.inspect([]*x509.Certificate{leaf, ca.cert}, "shop.example.net", time.Now())
	if finding.DomainMatches {
		t.Error("DomainMatches = true for a mismatched hostname, want false")
	}
}

func TestInspectExpiredCertificate(t *testing.T) {
	ca := newTestCA(t)
	leaf := newLeafCert(t, ca, "old.example.net", "",
		time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour))

	roots := x509.NewCertPool()
	roots.AddCert(ca.cert)
	collector := &TLSCollector{Roots: roots}

	finding := collector.inspect([]*x509.Certificate{leaf, ca.cert}, "old.example.net", time.Now())
	if !finding.Expired {
		t.Error("Expired = false, want true")
	}
	if finding.SelfSigned {
		t.Error("SelfSigned = true for an expired but trusted chain, want false")
	}
}

func TestIsFreeIssuer(t *testing.T) {
	tests := []struct {
		issuer string
		want   bool
	}{
		{"Let's Encrypt", true},
		{"ZeroSSL ECC CA", true},
		{"Google Trust Services LLC", true},
		{"DigiCert Inc", false},
		{"Sectigo Limited", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isFreeIssuer(tt.issuer); got != tt.want {
			t.Errorf("isFreeIssuer(%q) = %v, want %v", tt.issuer, got, tt.want)
		}
	}
}
