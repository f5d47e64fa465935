package analyzer

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// CorpusLoadError reports a corpus that could not be loaded or validated.
// This is fatal at process start: the brand matcher cannot run without it.
type CorpusLoadError struct {
	Path string
	Err  error
}

func (e *CorpusLoadError) Error() string {
	return fmt.Sprintf("load brand corpus %s: %v", e.Path, e.Err)
}

func (e *CorpusLoadError) Unwrap() error {
	return e.Err
}

// Brand categories, ordered by attacker value. Finance brands win ties
// because impersonating them is the higher-stakes attack.
const (
	CategoryFinance = "finance"
	CategoryRetail  = "retail"
	CategoryOther   = "other"
)

// BrandEntry is one curated brand: canonical name, its known legitimate
// registrable domains, and a display category.
type BrandEntry struct {
	Name     string   `yaml:"name" json:"name"`
	Category string   `yaml:"category" json:"category"`
	Domains  []string `yaml:"domains" json:"domains"`
}

// Corpus is the versioned brand corpus. It is built once at process start and
// read-only afterwards, so concurrent assessments share it without locking.
type Corpus struct {
	Version string
	Brands  []BrandEntry

	byDomain map[string]string // legitimate registrable domain -> brand name
}

type corpusFile struct {
	Version string       `yaml:"version"`
	Brands  []BrandEntry `yaml:"brands"`
}

// NewCorpus validates entries and builds the lookup index. Brands are sorted
// by name so iteration order, and therefore tie-breaking, is deterministic.
func NewCorpus(version string, brands []BrandEntry) (*Corpus, error) {
	if len(brands) == 0 {
		return nil, fmt.Errorf("corpus has no brands")
	}

	sorted := append([]BrandEntry(nil), brands...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	byDomain := make(map[string]string)
	for i := range sorted {
		b := &sorted[i]
		b.Name = strings.ToLower(strings.TrimSpace(b.Name))
		if b.Name == "" {
			return nil, fmt.Errorf("corpus entry %d has an empty name", i)
		}
		if b.Category == "" {
			b.Category = CategoryOther
		}
		for j, d := range b.Domains {
			d = strings.ToLower(strings.TrimSpace(d))
			b.Domains[j] = d
			if d != "" {
				byDomain[d] = b.Name
			}
		}
	}

	return &Corpus{Version: version, Brands: sorted, byDomain: byDomain}, nil
}

// LoadCorpusFile reads a YAML corpus from disk.
func LoadCorpusFile(path string) (*Corpus, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path is operator-supplied configuration.
	if err != nil {
		return nil, &CorpusLoadError{Path: path, Err: err}
	}

	var file corpusFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, &CorpusLoadError{Path: path, Err: err}
	}

	corpus, err := NewCorpus(file.Version, file.Brands)
	if err != nil {
		return nil, &CorpusLoadError{Path: path, Err: err}
	}
	return corpus, nil
}

// LegitimateOwner returns the brand owning the given registrable domain, if
// it appears on any brand's legitimate-domain list.
func (c *Corpus) LegitimateOwner(registrable string) (string, bool) {
	name, ok := c.byDomain[strings.ToLower(registrable)]
	return name, ok
}

func categoryRank(category string) int {
	switch category {
	case CategoryFinance:
		return 0
	case CategoryRetail:
		return 1
	default:
		return 2
	}
}

// DefaultCorpus returns the embedded brand corpus shipped with the binary.
func DefaultCorpus() *Corpus {
	corpus, err := NewCorpus("builtin-1", defaultBrands())
	if err != nil {
		// The embedded corpus is validated by tests; reaching this is a bug.
		panic(err)
	}
	return corpus
}

func defaultBrands() []BrandEntry {
	return []BrandEntry{
		{Name: "paypal", Category: CategoryFinance, Domains: []string{"paypal.com", "paypal.me"}},
		{Name: "chase", Category: CategoryFinance, Domains: []string{"chase.com"}},
		{Name: "wellsfargo", Category: CategoryFinance, Domains: []string{"wellsfargo.com"}},
		{Name: "hsbc", Category: CategoryFinance, Domains: []string{"hsbc.com", "hsbc.co.uk"}},
		{Name: "citibank", Category: CategoryFinance, Domains: []string{"citibank.com", "citi.com"}},
		{Name: "coinbase", Category: CategoryFinance, Domains: []string{"coinbase.com"}},
		{Name: "binance", Category: CategoryFinance, Domains: []string{"binance.com"}},
		{Name: "mybank", Category: CategoryFinance, Domains: []string{"mybank.com"}},
		{Name: "amazon", Category: CategoryRetail, Domains: []string{"amazon.com", "amazon.co.uk", "amazon.de"}},
		{Name: "ebay", Category: CategoryRetail, Domains: []string{"ebay.com", "ebay.co.uk"}},
		{Name: "walmart", Category: CategoryRetail, Domains: []string{"walmart.com"}},
		{Name: "alibaba", Category: CategoryRetail, Domains: []string{"alibaba.com", "aliexpress.com"}},
		{Name: "apple", Category: CategoryOther, Domains: []string{"apple.com", "icloud.com"}},
		{Name: "google", Category: CategoryOther, Domains: []string{"google.com", "gmail.com", "youtube.com"}},
		{Name: "microsoft", Category: CategoryOther, Domains: []string{"microsoft.com", "live.com", "outlook.com", "office.com"}},
		{Name: "facebook", Category: CategoryOther, Domains: []string{"facebook.com", "fb.com"}},
		{Name: "instagram", Category: CategoryOther, Domains: []string{"instagram.com"}},
		{Name: "whatsapp", Category: CategoryOther, Domains: []string{"whatsapp.com"}},
		{Name: "netflix", Category: CategoryOther, Domains: []string{"netflix.com"}},
		{Name: "linkedin", Category: CategoryOther, Domains: []string{"linkedin.com"}},
		{Name: "dropbox", Category: CategoryOther, Domains: []string{"dropbox.com"}},
		{Name: "adobe", Category: CategoryOther, Domains: []string{"adobe.com"}},
		{Name: "steam", Category: CategoryOther, Domains: []string{"steampowered.com", "steamcommunity.com"}},
		{Name: "twitter", Category: CategoryOther, Domains: []string{"twitter.com", "x.com"}},
	}
}
