package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phishguard/phishguard/internal/analyzer"
	"github.com/phishguard/phishguard/internal/dnsname"
)

type stubAssess struct {
	verdict *analyzer.RiskVerdict
	err     error
}

func (s *stubAssess) Assess(ctx context.Context, input string) (*analyzer.RiskVerdict, error) {
	return s.verdict, s.err
}

type stubVariants struct {
	resp *VariantsResponse
	err  error
}

func (s *stubVariants) Variants(ctx context.Context, input string, probe bool) (*VariantsResponse, error) {
	return s.resp, s.err
}

type stubCorpus struct {
	brands []analyzer.BrandEntry
}

func (s *stubCorpus) Brands(ctx context.Context) ([]analyzer.BrandEntry, error) {
	return s.brands, nil
}

func newTestServer(cfg Config) *Server {
	return NewServer(cfg)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(Config{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestAssessEndpoint(t *testing.T) {
	verdict := &analyzer.RiskVerdict{
		ScanID: "scan-1",
		Domain: "paypa1-secure-login.com",
		Score:  95,
		Tier:   analyzer.TierCritical,
	}
	srv := newTestServer(Config{Assess: &stubAssess{verdict: verdict}})

	body := strings.NewReader(`{"domain":"paypa1-secure-login.com"}`)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/assess", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var got analyzer.RiskVerdict
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Score != 95 || got.Tier != analyzer.TierCritical {
		t.Errorf("verdict = %+v, want score 95 tier critical", got)
	}
}

func TestAssessRejectsInvalidDomain(t *testing.T) {
	srv := newTestServer(Config{Assess: &stubAssess{
		err: &dnsname.InvalidDomainError{Input: "!!", Reason: "no host component"},
	}})

	body := strings.NewReader(`{"domain":"!!"}`)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/assess", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAssessHidesInternalErrors(t *testing.T) {
	srv := newTestServer(Config{Assess: &stubAssess{err: errors.New("corpus index corrupt at slot 7")}})

	body := strings.NewReader(`{"domain":"example.com"}`)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/assess", body))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "corpus index") {
		t.Error("internal error detail leaked to client")
	}
}

func TestAssessRequiresDomain(t *testing.T) {
	srv := newTestServer(Config{Assess: &stubAssess{}})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/assess", strings.NewReader(`{}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAssessMethodNotAllowed(t *testing.T) {
	srv := newTestServer(Config{Assess: &stubAssess{}})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/assess", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestAuthToken(t *testing.T) {
	srv := newTestServer(Config{
		Assess:    &stubAssess{verdict: &analyzer.RiskVerdict{}},
		AuthToken: "s3cret",
	})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/assess", strings.NewReader(`{"domain":"example.com"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("without token: status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assess", strings.NewReader(`{"domain":"example.com"}`))
	req.Header.Set("X-Auth-Token", "s3cret")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("with token: status = %d, want %d", rec.Code, http.StatusOK)
	}

	// Health stays open so load balancers can probe without credentials.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health with auth enabled: status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(Config{
		Assess:    &stubAssess{verdict: &analyzer.RiskVerdict{}},
		RateLimit: 1,
		RateBurst: 1,
	})

	makeReq := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assess", strings.NewReader(`{"domain":"example.com"}`))
		req.RemoteAddr = "198.51.100.7:4242"
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := makeReq(); code != http.StatusOK {
		t.Fatalf("first request: status = %d, want %d", code, http.StatusOK)
	}
	if code := makeReq(); code != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d, want %d", code, http.StatusTooManyRequests)
	}
}

func TestVariantsEndpoint(t *testing.T) {
	srv := newTestServer(Config{Variants: &stubVariants{resp: &VariantsResponse{
		Domain:   "paypal.com",
		Variants: []string{"aypal.com", "paypa1.com"},
	}}})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/variants/paypal.com", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got VariantsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.Variants) != 2 {
		t.Errorf("variants = %v, want 2 entries", got.Variants)
	}
}

func TestCorpusEndpoint(t *testing.T) {
	srv := newTestServer(Config{Corpus: &stubCorpus{brands: []analyzer.BrandEntry{
		{Name: "paypal", Category: analyzer.CategoryFinance, Domains: []string{"paypal.com"}},
	}}})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/corpus", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got []analyzer.BrandEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Name != "paypal" {
		t.Errorf("brands = %+v, want single paypal entry", got)
	}
}
