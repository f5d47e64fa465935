package analyzer

// Reason weights. Chosen so that one strong brand signal plus a couple of
// lexical hits crosses into High, while network uncertainty alone stays in
// the low tiers.
const (
	weightHomoglyph         = 20
	weightSuspiciousKeyword = 10
	suspiciousKeywordCap    = 20
	weightDeepSubdomains    = 10
	weightHighDigitRatio    = 5
	weightManyHyphens       = 5
	weightLongDomain        = 5

	weightBrandExact    = 40
	weightBrandHigh     = 30
	weightBrandModerate = 15

	weightNoHTTPS           = 10
	weightLongRedirectChain = 10
	weightHTTPUnavailable   = 5

	weightTLSBadCert     = 25
	weightTLSExpired     = 15
	weightTLSFreeIssuer  = 5
	weightTLSUnavailable = 10

	weightWhoisVeryYoung   = 20
	weightWhoisYoung       = 10
	weightWhoisPrivacy     = 5
	weightWhoisUnavailable = 5
)

const (
	longRedirectChain = 3
	veryYoungAgeDays  = 30
	youngAgeDays      = 365
)

// Tier is the discrete verdict bucket derived from the clamped score.
type Tier string

const (
	TierSafe     Tier = "Safe"
	TierLow      Tier = "Low"
	TierMedium   Tier = "Medium"
	TierHigh     Tier = "High"
	TierCritical Tier = "Critical"
)

// tierFor maps a clamped score onto its tier. Thresholds are fixed:
// [0,20) Safe, [20,40) Low, [40,60) Medium, [60,80) High, [80,100] Critical.
func tierFor(score int) Tier {
	switch {
	case score < 20:
		return TierSafe
	case score < 40:
		return TierLow
	case score < 60:
		return TierMedium
	case score < 80:
		return TierHigh
	default:
		return TierCritical
	}
}
