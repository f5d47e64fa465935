package analyzer

import (
	"fmt"
	"sort"
)

// explanations maps reason codes to educational fragments shown under the
// verdict. Text here tells the user why a signal matters, not just that it
// fired.
var explanations = map[string]string{
	"trusted_domain":      "This domain is on the official domain list of a known brand.",
	"homoglyph":           "Look-alike characters (such as Cyrillic letters or digit-for-letter swaps) are a hallmark of spoofed domains.",
	"suspicious_keywords": "Words like secure, login, or verify are planted to make a fake page feel routine.",
	"deep_subdomains":     "Long subdomain chains push the real registered domain out of sight in the address bar.",
	"high_digit_ratio":    "Digit-heavy names are common in bulk-registered throwaway domains.",
	"many_hyphens":        "Hyphen-stuffed names often imitate a brand plus action words.",
	"long_domain":         "Very long names leave room to bury a brand name inside an unrelated domain.",
	"brand_exact":         "The exact brand name on an unofficial domain is the strongest impersonation signal.",
	"brand_high":          "A near-miss spelling of a known brand is classic typosquatting.",
	"brand_moderate":      "The name loosely resembles a known brand; treat with caution.",
	"no_https":            "Legitimate login pages are served over HTTPS; plain HTTP exposes anything you type.",
	"redirect_chain":      "Long redirect chains can hide the final destination of a link.",
	"http_unavailable":    "An unreachable site may be parked, taken down, or not yet armed.",
	"bad_certificate":     "A certificate that does not vouch for this exact domain proves nothing about who runs it.",
	"expired_certificate": "An expired certificate means no one is maintaining the site's identity.",
	"free_certificate":    "Free certificates are fine in themselves but are the default choice for short-lived phishing campaigns.",
	"very_young_domain":   "Phishing domains are typically used within days of registration.",
	"young_domain":        "Domains under a year old carry less reputation history.",
	"whois_privacy":       "WHOIS privacy masks who registered the domain.",
	"whois_unavailable":   "Without registration records, the domain's age and ownership cannot be verified.",
}

// Explain renders the reason list as human-readable lines, heaviest
// contribution first. Pure formatting over the aggregator's output.
func Explain(reasons []Reason) []string {
	sorted := append([]Reason(nil), reasons...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Weight > sorted[j].Weight })

	lines := make([]string, 0, len(sorted))
	for _, r := range sorted {
		line := fmt.Sprintf("[+%d] %s", r.Weight, r.Text)
		if extra, ok := explanations[r.Code]; ok {
			line += ": " + extra
		}
		lines = append(lines, line)
	}
	return lines
}
