package analyzer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/dnsname"
	"github.com/phishguard/phishguard/internal/shared/constants"
)

// RiskVerdict is the final output of one assessment.
type RiskVerdict struct {
	ScanID     string           `json:"scan_id"`
	Domain     string           `json:"domain"`
	AssessedAt time.Time        `json:"assessed_at"`
	DurationMS float64          `json:"duration_ms"`
	Score      int              `json:"score"`
	Tier       Tier             `json:"tier"`
	Reasons    []Reason         `json:"reasons"`
	Lexical    LexicalFeatures  `json:"lexical"`
	Brand      BrandMatchResult `json:"brand"`
	Signals    Signals          `json:"signals"`
}

// EngineConfig wires an Engine. Nil capabilities are treated as disabled
// collectors whose signals report Unavailable, so an offline engine still
// produces verdicts from lexical and brand evidence alone.
type EngineConfig struct {
	Corpus           *Corpus
	HTTP             HTTPCapability
	TLS              TLSCapability
	Whois            WhoisCapability
	CollectorTimeout time.Duration
	Logger           *zap.SugaredLogger
}

// Engine runs assessments. It holds no per-request state; a single Engine is
// safe for concurrent use because the corpus is read-only and every
// assessment works on its own values.
type Engine struct {
	corpus  *Corpus
	http    HTTPCapability
	tls     TLSCapability
	whois   WhoisCapability
	timeout time.Duration
	log     *zap.SugaredLogger
	now     func() time.Time
}

// NewEngine builds an Engine, filling defaults for anything unset.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		corpus:  cfg.Corpus,
		http:    cfg.HTTP,
		tls:     cfg.TLS,
		whois:   cfg.Whois,
		timeout: cfg.CollectorTimeout,
		log:     cfg.Logger,
		now:     time.Now,
	}
	if e.corpus == nil {
		e.corpus = DefaultCorpus()
	}
	if e.timeout <= 0 {
		e.timeout = constants.DefaultCollectorTimeout
	}
	if e.log == nil {
		e.log = zap.NewNop().Sugar()
	}
	return e
}

// Corpus exposes the engine's corpus for presentation commands.
func (e *Engine) Corpus() *Corpus {
	return e.corpus
}

// Assess runs the full pipeline for one raw domain string.
//
// Lexical analysis and brand matching run synchronously; the three network
// collectors run concurrently, each under its own timeout, each writing only
// its own result slot. Collector failures never propagate: they degrade to
// Unavailable or TimedOut signals and the aggregator scores the partial
// evidence. The only errors returned are invalid input and caller
// cancellation.
func (e *Engine) Assess(ctx context.Context, raw string) (*RiskVerdict, error) {
	start := e.now()

	d, err := dnsname.Parse(raw)
	if err != nil {
		return nil, err
	}

	features := AnalyzeLexical(d)
	match := MatchBrand(d, e.corpus)

	signals := e.collect(ctx, d)

	// Caller cancellation discards partial results rather than scoring them.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	score, tier, reasons := Aggregate(features, match, signals)

	verdict := &RiskVerdict{
		ScanID:     uuid.NewString(),
		Domain:     d.Normalized,
		AssessedAt: start.UTC(),
		DurationMS: float64(e.now().Sub(start)) / float64(time.Millisecond),
		Score:      score,
		Tier:       tier,
		Reasons:    reasons,
		Lexical:    features,
		Brand:      match,
		Signals:    signals,
	}

	e.log.Debugw("assessment complete",
		"domain", d.Normalized,
		"scan_id", verdict.ScanID,
		"score", score,
		"tier", tier,
	)

	return verdict, nil
}

// collect fans out the three collectors and blocks until each has returned
// or hit its own timeout. A slow WHOIS lookup never delays the TLS result;
// budgets are independent, not shared.
func (e *Engine) collect(ctx context.Context, d *dnsname.Domain) Signals {
	var signals Signals
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		signals.HTTP = e.collectHTTP(ctx, d)
	}()
	go func() {
		defer wg.Done()
		signals.TLS = e.collectTLS(ctx, d)
	}()
	go func() {
		defer wg.Done()
		signals.Whois = e.collectWhois(ctx, d)
	}()
	wg.Wait()

	return signals
}

func (e *Engine) collectHTTP(ctx context.Context, d *dnsname.Domain) HTTPSignal {
	if e.http == nil {
		return HTTPSignal{Outcome: OutcomeUnavailable, Reason: "collector disabled"}
	}
	collectCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	finding, err := e.http.Fetch(collectCtx, d.ASCII)
	if err != nil {
		return HTTPSignal{Outcome: outcomeForError(collectCtx, err), Reason: err.Error()}
	}
	return HTTPSignal{Outcome: OutcomeFound, Finding: finding}
}

func (e *Engine) collectTLS(ctx context.Context, d *dnsname.Domain) TLSSignal {
	if e.tls == nil {
		return TLSSignal{Outcome: OutcomeUnavailable, Reason: "collector disabled"}
	}
	collectCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	finding, err := e.tls.Handshake(collectCtx, d.ASCII)
	if err != nil {
		return TLSSignal{Outcome: outcomeForError(collectCtx, err), Reason: err.Error()}
	}
	return TLSSignal{Outcome: OutcomeFound, Finding: finding}
}

func (e *Engine) collectWhois(ctx context.Context, d *dnsname.Domain) WhoisSignal {
	if e.whois == nil {
		return WhoisSignal{Outcome: OutcomeUnavailable, Reason: "collector disabled"}
	}
	collectCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	finding, err := e.whois.Lookup(collectCtx, d.Registrable)
	if err != nil {
		return WhoisSignal{Outcome: outcomeForError(collectCtx, err), Reason: err.Error()}
	}
	return WhoisSignal{Outcome: OutcomeFound, Finding: finding}
}

// outcomeForError distinguishes a blown timeout budget from any other
// collector failure.
func outcomeForError(ctx context.Context, err error) Outcome {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return OutcomeTimedOut
	}
	return OutcomeUnavailable
}
