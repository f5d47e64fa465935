package api

import (
	"context"

	"github.com/phishguard/phishguard/internal/analyzer"
	"github.com/phishguard/phishguard/internal/collector"
	"github.com/phishguard/phishguard/internal/dnsname"
)

// Service adapts the assessment engine and the variant prober to the API
// service interfaces. A nil Prober disables registration probing; variant
// generation still works.
type Service struct {
	Engine *analyzer.Engine
	Prober *collector.VariantProber
}

func (s *Service) Assess(ctx context.Context, input string) (*analyzer.RiskVerdict, error) {
	return s.Engine.Assess(ctx, input)
}

func (s *Service) Variants(ctx context.Context, input string, probe bool) (*VariantsResponse, error) {
	d, err := dnsname.Parse(input)
	if err != nil {
		return nil, err
	}

	resp := &VariantsResponse{
		Domain:   d.Registrable,
		Variants: analyzer.TypoVariants(d),
	}
	if probe && s.Prober != nil {
		resp.Registered = s.Prober.Probe(ctx, resp.Variants)
	}
	return resp, nil
}

func (s *Service) Brands(ctx context.Context) ([]analyzer.BrandEntry, error) {
	return s.Engine.Corpus().Brands, nil
}

func (s *Service) Check(ctx context.Context) error { return nil }

// Ready reports readiness. The engine carries no external state beyond its
// corpus, so readiness equals liveness.
func (s *Service) Ready(ctx context.Context) error { return nil }
