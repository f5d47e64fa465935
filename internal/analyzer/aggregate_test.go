package analyzer

import (
	"testing"
	"time"
)

func foundHTTP(f HTTPFinding) HTTPSignal {
	return HTTPSignal{Outcome: OutcomeFound, Finding: &f}
}

func foundTLS(f TLSFinding) TLSSignal {
	return TLSSignal{Outcome: OutcomeFound, Finding: &f}
}

func foundWhois(f WhoisFinding) WhoisSignal {
	return WhoisSignal{Outcome: OutcomeFound, Finding: &f}
}

func nominalSignals() Signals {
	created := time.Now().AddDate(-11, 0, 0)
	return Signals{
		HTTP:  foundHTTP(HTTPFinding{StatusCode: 200, UsesHTTPS: true}),
		TLS:   foundTLS(TLSFinding{Issuer: "DigiCert Inc", DomainMatches: true}),
		Whois: foundWhois(WhoisFinding{CreatedAt: &created, AgeDays: 4000, Registrar: "Example Registrar"}),
	}
}

func unavailableSignals() Signals {
	return Signals{
		HTTP:  HTTPSignal{Outcome: OutcomeUnavailable, Reason: "connection refused"},
		TLS:   TLSSignal{Outcome: OutcomeUnavailable, Reason: "no TLS"},
		Whois: WhoisSignal{Outcome: OutcomeTimedOut, Reason: "query timed out"},
	}
}

func TestAggregateTrustedShortCircuit(t *testing.T) {
	features := AnalyzeLexical(mustParse(t, "mybank.com"))
	match := MatchBrand(mustParse(t, "mybank.com"), DefaultCorpus())
	if !match.Trusted {
		t.Fatal("fixture domain should be trusted")
	}

	// Even hostile signals must not move a trusted domain off Safe.
	score, tier, reasons := Aggregate(features, match, unavailableSignals())
	if score != 0 || tier != TierSafe {
		t.Fatalf("trusted domain scored %d/%s, want 0/Safe", score, tier)
	}
	if len(reasons) != 1 || reasons[0].Code != "trusted_domain" {
		t.Fatalf("unexpected reasons: %+v", reasons)
	}
}

func TestAggregateCleanDomainNominalSignals(t *testing.T) {
	features := AnalyzeLexical(mustParse(t, "quietgarden.net"))
	match := MatchBrand(mustParse(t, "quietgarden.net"), DefaultCorpus())

	score, tier, _ := Aggregate(features, match, nominalSignals())
	if tier != TierSafe {
		t.Fatalf("clean domain got tier %s (score %d), want Safe", tier, score)
	}
	if score >= 20 {
		t.Fatalf("clean domain score = %d, want near 0", score)
	}
}

func TestAggregatePhishingScenarioCritical(t *testing.T) {
	domain := mustParse(t, "paypa1-secure-login.com")
	features := AnalyzeLexical(domain)
	match := MatchBrand(domain, DefaultCorpus())

	signals := Signals{
		HTTP:  foundHTTP(HTTPFinding{StatusCode: 200, RedirectCount: 0, UsesHTTPS: false}),
		TLS:   TLSSignal{Outcome: OutcomeUnavailable, Reason: "no TLS support"},
		Whois: foundWhois(WhoisFinding{AgeDays: 5}),
	}

	score, tier, reasons := Aggregate(features, match, signals)
	if tier != TierCritical {
		t.Fatalf("tier = %s (score %d), want Critical; reasons %+v", tier, score, reasons)
	}

	wantCodes := []string{"homoglyph", "suspicious_keywords", "brand_exact", "no_https", "tls_unavailable", "very_young_domain"}
	got := make(map[string]bool, len(reasons))
	for _, r := range reasons {
		got[r.Code] = true
	}
	for _, code := range wantCodes {
		if !got[code] {
			t.Errorf("expected reason %q to trigger, reasons: %+v", code, reasons)
		}
	}
}

func TestAggregateAllCollectorsUnavailable(t *testing.T) {
	domain := mustParse(t, "quietgarden.net")
	features := AnalyzeLexical(domain)
	match := MatchBrand(domain, DefaultCorpus())

	score, tier, reasons := Aggregate(features, match, unavailableSignals())

	// Uncertainty weights alone: 5 (http) + 10 (tls) + 5 (whois).
	if score != 20 {
		t.Fatalf("score = %d, want 20 from uncertainty weights alone", score)
	}
	if tier != TierLow {
		t.Fatalf("tier = %s, want Low", tier)
	}
	for _, r := range reasons {
		if r.Source == SourceLexical || r.Source == SourceBrand {
			t.Fatalf("clean domain triggered non-signal reason %+v", r)
		}
	}
}

func TestAggregateScoreIsSumOfWeightsClamped(t *testing.T) {
	domain := mustParse(t, "paypa1-secure-login-verify-account.com")
	features := AnalyzeLexical(domain)
	match := MatchBrand(domain, DefaultCorpus())

	signals := Signals{
		HTTP:  foundHTTP(HTTPFinding{StatusCode: 200, RedirectCount: 6, UsesHTTPS: false}),
		TLS:   foundTLS(TLSFinding{Issuer: "Let's Encrypt", SelfSigned: true, FreeIssuer: true, Expired: true}),
		Whois: foundWhois(WhoisFinding{AgeDays: 2, PrivacyProtected: true}),
	}

	score, tier, reasons := Aggregate(features, match, signals)

	sum := 0
	for _, r := range reasons {
		sum += r.Weight
	}
	if sum <= 100 {
		t.Fatalf("fixture should overflow the clamp, weights sum to %d", sum)
	}
	if score != 100 {
		t.Fatalf("score = %d, want clamp at 100", score)
	}
	if tier != TierCritical {
		t.Fatalf("tier = %s, want Critical", tier)
	}
}

func TestAggregateMonotonicity(t *testing.T) {
	domain := mustParse(t, "quietgarden.net")
	features := AnalyzeLexical(domain)
	match := MatchBrand(domain, DefaultCorpus())

	base := nominalSignals()
	baseScore, _, _ := Aggregate(features, match, base)

	// Flipping any single extra reason on never lowers the score.
	mutations := []Signals{
		{HTTP: foundHTTP(HTTPFinding{StatusCode: 200, UsesHTTPS: false}), TLS: base.TLS, Whois: base.Whois},
		{HTTP: base.HTTP, TLS: foundTLS(TLSFinding{Issuer: "x", DomainMatches: false}), Whois: base.Whois},
		{HTTP: base.HTTP, TLS: base.TLS, Whois: foundWhois(WhoisFinding{AgeDays: 10})},
		{HTTP: base.HTTP, TLS: base.TLS, Whois: foundWhois(WhoisFinding{AgeDays: 4000, PrivacyProtected: true})},
	}

	for i, signals := range mutations {
		score, _, _ := Aggregate(features, match, signals)
		if score < baseScore {
			t.Errorf("mutation %d decreased score: %d < %d", i, score, baseScore)
		}
	}
}

func TestAggregateDeterministic(t *testing.T) {
	domain := mustParse(t, "paypa1-secure-login.com")
	features := AnalyzeLexical(domain)
	match := MatchBrand(domain, DefaultCorpus())
	signals := unavailableSignals()

	firstScore, firstTier, firstReasons := Aggregate(features, match, signals)
	for i := 0; i < 5; i++ {
		score, tier, reasons := Aggregate(features, match, signals)
		if score != firstScore || tier != firstTier || len(reasons) != len(firstReasons) {
			t.Fatalf("aggregation not deterministic on run %d", i)
		}
		for j := range reasons {
			if reasons[j] != firstReasons[j] {
				t.Fatalf("reason %d differs: %+v vs %+v", j, reasons[j], firstReasons[j])
			}
		}
	}
}

func TestTierThresholds(t *testing.T) {
	testCases := []struct {
		score int
		want  Tier
	}{
		{0, TierSafe},
		{19, TierSafe},
		{20, TierLow},
		{39, TierLow},
		{40, TierMedium},
		{59, TierMedium},
		{60, TierHigh},
		{79, TierHigh},
		{80, TierCritical},
		{100, TierCritical},
	}

	for _, tc := range testCases {
		if got := tierFor(tc.score); got != tc.want {
			t.Errorf("tierFor(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
