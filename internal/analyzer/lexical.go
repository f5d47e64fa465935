package analyzer

import (
	"strings"
	"unicode"

	"github.com/phishguard/phishguard/internal/dnsname"
)

// suspiciousKeywords are credential-phishing bait words matched as substrings
// of the registrable label. Kept short and curated; every hit costs weight.
var suspiciousKeywords = []string{
	"secure",
	"login",
	"signin",
	"verify",
	"account",
	"update",
	"confirm",
	"banking",
	"wallet",
	"password",
	"support",
	"billing",
	"invoice",
	"recover",
	"unlock",
}

// LengthBucket classifies the normalized host length.
type LengthBucket string

const (
	LengthShort   LengthBucket = "short"
	LengthTypical LengthBucket = "typical"
	LengthLong    LengthBucket = "long"
)

const (
	shortLengthMax      = 9
	typicalLengthMax    = 24
	deepSubdomainLevels = 3
	highDigitRatio      = 0.2
	manyHyphens         = 3
)

// LexicalFeatures is an immutable snapshot of structural properties derived
// from a Domain. Producing it requires no I/O and cannot fail.
type LexicalFeatures struct {
	Length             int          `json:"length"`
	LengthBucket       LengthBucket `json:"length_bucket"`
	SubdomainDepth     int          `json:"subdomain_depth"`
	HyphenCount        int          `json:"hyphen_count"`
	DigitCount         int          `json:"digit_count"`
	LetterCount        int          `json:"letter_count"`
	DigitRatio         float64      `json:"digit_ratio"`
	SuspiciousKeywords []string     `json:"suspicious_keywords,omitempty"`
	Homoglyph          bool         `json:"homoglyph"`
	MixedScript        bool         `json:"mixed_script"`
	Punycode           bool         `json:"punycode"`
}

// AnalyzeLexical computes structural features of a parsed domain.
func AnalyzeLexical(d *dnsname.Domain) LexicalFeatures {
	host := d.Normalized
	label := d.Label

	features := LexicalFeatures{
		Length:         len(host),
		SubdomainDepth: d.SubdomainDepth(),
		HyphenCount:    strings.Count(host, "-"),
		Punycode:       d.WasPunycode,
		MixedScript:    hasMixedScript(host),
	}

	for _, r := range host {
		switch {
		case unicode.IsDigit(r):
			features.DigitCount++
		case unicode.IsLetter(r):
			features.LetterCount++
		}
	}
	if total := features.DigitCount + features.LetterCount; total > 0 {
		features.DigitRatio = float64(features.DigitCount) / float64(total)
	}

	switch {
	case features.Length <= shortLengthMax:
		features.LengthBucket = LengthShort
	case features.Length <= typicalLengthMax:
		features.LengthBucket = LengthTypical
	default:
		features.LengthBucket = LengthLong
	}

	for _, keyword := range suspiciousKeywords {
		if strings.Contains(label, keyword) {
			features.SuspiciousKeywords = append(features.SuspiciousKeywords, keyword)
		}
	}

	if _, changed := foldHomoglyphs(label); changed {
		features.Homoglyph = true
	}

	return features
}

// HighDigitRatio reports whether the digit density crosses the scoring
// threshold.
func (f LexicalFeatures) HighDigitRatio() bool {
	return f.DigitRatio > highDigitRatio
}

// DeepSubdomains reports whether the subdomain nesting crosses the scoring
// threshold.
func (f LexicalFeatures) DeepSubdomains() bool {
	return f.SubdomainDepth >= deepSubdomainLevels
}

// ManyHyphens reports whether the hyphen count crosses the scoring threshold.
func (f LexicalFeatures) ManyHyphens() bool {
	return f.HyphenCount >= manyHyphens
}
