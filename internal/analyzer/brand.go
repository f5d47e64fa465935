package analyzer

import (
	"strings"

	"github.com/phishguard/phishguard/internal/dnsname"
)

// MatchTier buckets brand-impersonation confidence.
type MatchTier string

const (
	// MatchNone means no brand came close enough to matter.
	MatchNone MatchTier = "none"
	// MatchModerate is a normalized distance in (0.2, 0.4].
	MatchModerate MatchTier = "moderate"
	// MatchHigh is a normalized distance in (0, 0.2].
	MatchHigh MatchTier = "high"
	// MatchExact means the brand name itself is used on a domain the brand
	// does not own.
	MatchExact MatchTier = "exact"
)

const (
	highDistanceMax     = 0.2
	moderateDistanceMax = 0.4
)

// BrandMatchResult is the outcome of matching one domain against the corpus.
type BrandMatchResult struct {
	// Brand is the best-matching brand name, empty when Tier is none.
	Brand string `json:"brand,omitempty"`
	// Category is the matched brand's category.
	Category string `json:"category,omitempty"`
	// MatchedToken is the portion of the label that matched (the whole label
	// or one hyphen-separated token), after homoglyph folding.
	MatchedToken string `json:"matched_token,omitempty"`
	// Distance is the minimum normalized Damerau-Levenshtein distance.
	// 1 when nothing matched.
	Distance float64 `json:"distance"`
	// Confidence decreases monotonically with Distance, in [0,1].
	Confidence float64 `json:"confidence"`
	// Tier buckets the confidence.
	Tier MatchTier `json:"tier"`
	// Trusted is true when the domain is on a brand's own legitimate-domain
	// list. Trusted results always short-circuit to a Safe verdict.
	Trusted bool `json:"trusted"`
}

// MatchBrand compares the domain's significant label against every brand in
// the corpus using normalized Damerau-Levenshtein distance over
// homoglyph-folded candidate tokens.
//
// Candidates are the full registrable label plus each hyphen-separated token,
// so "paypa1-secure-login" is matched both whole and as {"paypa1", "secure",
// "login"}. Ties at equal distance prefer higher-value categories
// (finance > retail > other), then lexicographic brand order.
func MatchBrand(d *dnsname.Domain, corpus *Corpus) BrandMatchResult {
	if owner, ok := corpus.LegitimateOwner(d.Registrable); ok {
		return BrandMatchResult{
			Brand:    owner,
			Category: brandCategory(corpus, owner),
			Trusted:  true,
			Tier:     MatchNone,
		}
	}

	candidates := candidateTokens(d.Label)

	best := BrandMatchResult{Distance: 1, Tier: MatchNone}
	found := false
	for _, brand := range corpus.Brands {
		dist, token := bestDistance(candidates, brand.Name)
		if !found || dist < best.Distance || (dist == best.Distance && tieBreakWins(brand, best, corpus)) {
			found = true
			best.Brand = brand.Name
			best.Category = brand.Category
			best.MatchedToken = token
			best.Distance = dist
		}
	}

	switch {
	case best.Distance == 0:
		best.Tier = MatchExact
	case best.Distance <= highDistanceMax:
		best.Tier = MatchHigh
	case best.Distance <= moderateDistanceMax:
		best.Tier = MatchModerate
	default:
		return BrandMatchResult{Distance: best.Distance, Tier: MatchNone}
	}

	best.Confidence = confidenceFor(best.Distance)
	return best
}

// confidenceFor maps normalized distance to [0,1], strictly decreasing up to
// the moderate cutoff.
func confidenceFor(distance float64) float64 {
	if distance >= moderateDistanceMax {
		return 0
	}
	return 1 - distance/moderateDistanceMax
}

// candidateTokens returns the folded label plus its folded hyphen-separated
// tokens, deduplicated, longest first for stable matched-token reporting.
func candidateTokens(label string) []string {
	folded, _ := foldHomoglyphs(label)
	seen := map[string]struct{}{folded: {}}
	tokens := []string{folded}
	for _, part := range strings.Split(folded, "-") {
		if len(part) < 3 {
			continue // single letters and two-char fragments match everything
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		tokens = append(tokens, part)
	}
	return tokens
}

func bestDistance(candidates []string, brand string) (float64, string) {
	best := 1.0
	token := ""
	for _, c := range candidates {
		maxLen := len(c)
		if len(brand) > maxLen {
			maxLen = len(brand)
		}
		if maxLen == 0 {
			continue
		}
		dist := float64(damerauLevenshtein(c, brand)) / float64(maxLen)
		if dist < best {
			best = dist
			token = c
		}
	}
	return best, token
}

func tieBreakWins(challenger BrandEntry, incumbent BrandMatchResult, corpus *Corpus) bool {
	cr, ir := categoryRank(challenger.Category), categoryRank(incumbent.Category)
	if cr != ir {
		return cr < ir
	}
	return challenger.Name < incumbent.Brand
}

func brandCategory(corpus *Corpus, name string) string {
	for _, b := range corpus.Brands {
		if b.Name == name {
			return b.Category
		}
	}
	return CategoryOther
}

// damerauLevenshtein computes the optimal string alignment distance between
// two strings: insertions, deletions, substitutions, and transpositions of
// adjacent characters all cost 1.
func damerauLevenshtein(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	matrix := make([][]int, len(r1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(r2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(r2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(r1); i++ {
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)

			if i > 1 && j > 1 && r1[i-1] == r2[j-2] && r1[i-2] == r2[j-1] {
				matrix[i][j] = min(matrix[i][j], matrix[i-2][j-2]+1) // transposition
			}
		}
	}

	return matrix[len(r1)][len(r2)]
}
