package analyzer

import (
	"strings"

	"github.com/phishguard/phishguard/internal/dnsname"
	"github.com/phishguard/phishguard/internal/shared/constants"
)

// typoSubstitutions are the character swaps typosquatters register most
// often.
var typoSubstitutions = map[rune][]rune{
	'a': {'e', '4'},
	'e': {'a', '3'},
	'i': {'1', 'l'},
	'l': {'1', 'i'},
	'o': {'0'},
	's': {'5'},
	'g': {'q', '9'},
	'm': {'n'},
	'n': {'m'},
}

// swapTLDs are alternate suffixes checked when probing variant registrations.
var swapTLDs = []string{"com", "net", "org", "co", "info", "biz"}

// TypoVariants generates plausible typosquats of the domain's registrable
// name: character omissions, adjacent transpositions, confusable
// substitutions, and TLD swaps. Variants are generated on demand, deduped,
// and capped; the original domain is never included.
func TypoVariants(d *dnsname.Domain) []string {
	name := d.Label
	seen := map[string]struct{}{d.Registrable: {}}
	variants := make([]string, 0, constants.MaxVariants)

	add := func(candidate string) bool {
		if len(variants) >= constants.MaxVariants {
			return false
		}
		if _, dup := seen[candidate]; dup {
			return true
		}
		seen[candidate] = struct{}{}
		variants = append(variants, candidate)
		return true
	}

	// Character omission.
	if len(name) > 3 {
		for i := 0; i < len(name); i++ {
			if !add(name[:i] + name[i+1:] + "." + d.TLD) {
				return variants
			}
		}
	}

	// Adjacent transposition.
	for i := 0; i < len(name)-1; i++ {
		if name[i] == name[i+1] {
			continue
		}
		swapped := name[:i] + string(name[i+1]) + string(name[i]) + name[i+2:]
		if !add(swapped + "." + d.TLD) {
			return variants
		}
	}

	// Confusable substitutions.
	for i, r := range name {
		for _, repl := range typoSubstitutions[r] {
			candidate := name[:i] + string(repl) + name[i+len(string(r)):]
			if !add(candidate + "." + d.TLD) {
				return variants
			}
		}
	}

	// TLD swaps.
	for _, tld := range swapTLDs {
		if strings.EqualFold(tld, d.TLD) {
			continue
		}
		if !add(name + "." + tld) {
			return variants
		}
	}

	return variants
}
