package analyzer

import (
	"strings"
	"unicode"

	"github.com/Zamiell/confusables"
)

// asciiFolds maps ASCII characters that read as letters in domain names but
// are not covered by the Unicode confusables tables. These are the classic
// leetspeak swaps typosquatters use ("paypa1", "g00gle").
var asciiFolds = map[rune]rune{
	'0': 'o',
	'1': 'l',
	'3': 'e',
	'4': 'a',
	'5': 's',
	'7': 't',
	'8': 'b',
	'9': 'g',
}

// foldHomoglyphs maps visually confusable characters to a canonical Latin
// form. The second return value reports whether folding changed anything,
// which is itself a strong phishing indicator.
func foldHomoglyphs(s string) (string, bool) {
	folded := strings.ToLower(confusables.Normalize(s))
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if repl, ok := asciiFolds[r]; ok {
			b.WriteRune(repl)
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	return out, out != strings.ToLower(s)
}

// hasMixedScript reports whether labels combine characters from more than one
// Unicode script, the signature of an IDN homograph attack.
func hasMixedScript(host string) bool {
	scripts := make(map[string]struct{})
	for _, label := range strings.Split(host, ".") {
		for _, r := range label {
			script := scriptOf(r)
			if script == "" {
				continue
			}
			scripts[script] = struct{}{}
			if len(scripts) >= 2 {
				return true
			}
		}
	}
	return false
}

func scriptOf(r rune) string {
	switch {
	case unicode.In(r, unicode.Latin):
		return "latin"
	case unicode.In(r, unicode.Cyrillic):
		return "cyrillic"
	case unicode.In(r, unicode.Greek):
		return "greek"
	case unicode.In(r, unicode.Hiragana):
		return "hiragana"
	case unicode.In(r, unicode.Katakana):
		return "katakana"
	case unicode.In(r, unicode.Han):
		return "han"
	default:
		return ""
	}
}
