package analyzer

import (
	"fmt"
	"strings"
)

// Reason sources, recorded on every Reason for attribution.
const (
	SourceLexical = "lexical"
	SourceBrand   = "brand"
	SourceHTTP    = "http"
	SourceTLS     = "tls"
	SourceWhois   = "whois"
)

// Reason is one triggered rule with the weight it contributed.
type Reason struct {
	Code   string `json:"code"`
	Source string `json:"source"`
	Weight int    `json:"weight"`
	Text   string `json:"text"`
}

// Aggregate combines lexical features, the brand match, and the three
// collected signals into a clamped score, a tier, and the ordered reason
// list. It is deterministic and pure: identical inputs always produce an
// identical result, and the sum is commutative over signal arrival order.
func Aggregate(features LexicalFeatures, match BrandMatchResult, signals Signals) (int, Tier, []Reason) {
	// Trusted allow-list short-circuit: a brand's own domain is Safe no
	// matter what the network says.
	if match.Trusted {
		return 0, TierSafe, []Reason{{
			Code:   "trusted_domain",
			Source: SourceBrand,
			Weight: 0,
			Text:   fmt.Sprintf("recognized legitimate domain of %s", match.Brand),
		}}
	}

	var reasons []Reason
	add := func(code, source string, weight int, text string) {
		reasons = append(reasons, Reason{Code: code, Source: source, Weight: weight, Text: text})
	}

	// Lexical.
	if features.Homoglyph || features.MixedScript {
		add("homoglyph", SourceLexical, weightHomoglyph,
			"domain uses visually confusable characters")
	}
	if n := len(features.SuspiciousKeywords); n > 0 {
		weight := n * weightSuspiciousKeyword
		if weight > suspiciousKeywordCap {
			weight = suspiciousKeywordCap
		}
		add("suspicious_keywords", SourceLexical, weight,
			fmt.Sprintf("contains phishing bait keywords: %s", strings.Join(features.SuspiciousKeywords, ", ")))
	}
	if features.DeepSubdomains() {
		add("deep_subdomains", SourceLexical, weightDeepSubdomains,
			fmt.Sprintf("%d nested subdomain levels", features.SubdomainDepth))
	}
	if features.HighDigitRatio() {
		add("high_digit_ratio", SourceLexical, weightHighDigitRatio,
			fmt.Sprintf("unusually digit-heavy name (%.0f%% digits)", features.DigitRatio*100))
	}
	if features.ManyHyphens() {
		add("many_hyphens", SourceLexical, weightManyHyphens,
			fmt.Sprintf("%d hyphens in the name", features.HyphenCount))
	}
	if features.LengthBucket == LengthLong {
		add("long_domain", SourceLexical, weightLongDomain,
			fmt.Sprintf("unusually long name (%d characters)", features.Length))
	}

	// Brand impersonation.
	switch match.Tier {
	case MatchExact:
		add("brand_exact", SourceBrand, weightBrandExact,
			fmt.Sprintf("uses the %s brand name on a domain %s does not own", match.Brand, match.Brand))
	case MatchHigh:
		add("brand_high", SourceBrand, weightBrandHigh,
			fmt.Sprintf("close imitation of %s (distance %.2f)", match.Brand, match.Distance))
	case MatchModerate:
		add("brand_moderate", SourceBrand, weightBrandModerate,
			fmt.Sprintf("resembles %s (distance %.2f)", match.Brand, match.Distance))
	case MatchNone:
		// No contribution.
	}

	// HTTP reachability.
	switch signals.HTTP.Outcome {
	case OutcomeFound:
		f := signals.HTTP.Finding
		if !f.UsesHTTPS {
			add("no_https", SourceHTTP, weightNoHTTPS, "site is not served over HTTPS")
		}
		if f.RedirectCount > longRedirectChain {
			add("redirect_chain", SourceHTTP, weightLongRedirectChain,
				fmt.Sprintf("%d redirects before the final page", f.RedirectCount))
		}
	case OutcomeUnavailable, OutcomeTimedOut:
		add("http_unavailable", SourceHTTP, weightHTTPUnavailable,
			"site could not be reached for inspection")
	}

	// TLS certificate.
	switch signals.TLS.Outcome {
	case OutcomeFound:
		f := signals.TLS.Finding
		if f.SelfSigned || !f.DomainMatches {
			add("bad_certificate", SourceTLS, weightTLSBadCert,
				"certificate is self-signed or does not match the domain")
		}
		if f.Expired {
			add("expired_certificate", SourceTLS, weightTLSExpired, "certificate is expired or not yet valid")
		}
		if f.FreeIssuer {
			add("free_certificate", SourceTLS, weightTLSFreeIssuer,
				fmt.Sprintf("certificate from automated/free issuer %s", f.Issuer))
		}
	case OutcomeUnavailable, OutcomeTimedOut:
		add("tls_unavailable", SourceTLS, weightTLSUnavailable,
			"TLS certificate could not be inspected")
	}

	// WHOIS registration.
	switch signals.Whois.Outcome {
	case OutcomeFound:
		f := signals.Whois.Finding
		switch {
		case f.AgeDays >= 0 && f.AgeDays < veryYoungAgeDays:
			add("very_young_domain", SourceWhois, weightWhoisVeryYoung,
				fmt.Sprintf("registered only %d day(s) ago", f.AgeDays))
		case f.AgeDays >= 0 && f.AgeDays < youngAgeDays:
			add("young_domain", SourceWhois, weightWhoisYoung,
				fmt.Sprintf("registered %d day(s) ago, less than a year", f.AgeDays))
		}
		if f.PrivacyProtected {
			add("whois_privacy", SourceWhois, weightWhoisPrivacy, "registration hidden behind WHOIS privacy")
		}
	case OutcomeUnavailable, OutcomeTimedOut:
		add("whois_unavailable", SourceWhois, weightWhoisUnavailable,
			"registration records could not be retrieved")
	}

	score := 0
	for _, r := range reasons {
		score += r.Weight
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return score, tierFor(score), reasons
}
