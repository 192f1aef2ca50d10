package preview

import (
	"context"
	"fmt"
	"github.com/xyths/tezos-preview/indexer"
	"go.uber.org/zap"
	"sync"
	"time"
)

// DefaultRate is the per-endpoint calls-per-minute budget when none is configured.
const DefaultRate = 600

type Config struct {
	TzktURL   string `json:"tzktUrl"`
	ObjktURL  string `json:"objktUrl"`
	Timeout   string `json:"timeout"`
	UserAgent string `json:"userAgent"`
	// calls per minute, per endpoint key; 0 means DefaultRate, negative disables the gate
	DefaultRate int            `json:"defaultRate"`
	Rates       map[string]int `json:"rates"`
}

type ChainIndexer interface {
	Token(ctx context.Context, contract, tokenID string) (*indexer.TzktToken, error)
}

type MarketIndexer interface {
	Token(ctx context.Context, contract, tokenID string) (*indexer.ObjktToken, error)
	ContractByPath(ctx context.Context, path string) (string, error)
	Collection(ctx context.Context, contract string) (*indexer.ObjktFa, error)
	Gallery(ctx context.Context, ref string) (*indexer.ObjktGallery, error)
}

// Previewer turns chat messages into NFT and collection records.
type Previewer struct {
	chain      ChainIndexer
	market     MarketIndexer
	resolver   *Resolver
	normalizer Normalizer

	Sugar *zap.SugaredLogger
}

// New builds both upstream clients sharing one rate gate.
func New(cfg Config, sugar *zap.SugaredLogger) (*Previewer, error) {
	if sugar == nil {
		sugar = zap.NewNop().Sugar()
	}
	timeout := indexer.DefaultTimeout
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("timeout %s format error: %w", cfg.Timeout, err)
		}
		timeout = d
	}
	rate := cfg.DefaultRate
	if rate == 0 {
		rate = DefaultRate
	}
	gate := indexer.NewGate(rate, cfg.Rates)

	opts := []indexer.Option{indexer.WithTimeout(timeout), indexer.WithLogger(sugar)}
	if cfg.UserAgent != "" {
		opts = append(opts, indexer.WithUserAgent(cfg.UserAgent))
	}
	return NewWithClients(
		indexer.NewTzkt(cfg.TzktURL, gate, opts...),
		indexer.NewObjkt(cfg.ObjktURL, gate, opts...),
		sugar,
	), nil
}

func NewWithClients(chain ChainIndexer, market MarketIndexer, sugar *zap.SugaredLogger) *Previewer {
	if sugar == nil {
		sugar = zap.NewNop().Sugar()
	}
	return &Previewer{
		chain:    chain,
		market:   market,
		resolver: NewResolver(market),
		Sugar:    sugar,
	}
}

// SetClock fixes the time used for dutch auction pricing.
func (p *Previewer) SetClock(now func() time.Time) {
	p.normalizer.Now = now
}

// ProcessMessage previews every token link in text. Links are fetched
// concurrently and failed links are left out; ErrNoLinksFound when there is
// nothing to do, *AggregateError when every link failed.
func (p *Previewer) ProcessMessage(ctx context.Context, text string) ([]*NFT, error) {
	links := DetectNFTLinks(text)
	if len(links) == 0 {
		return nil, ErrNoLinksFound
	}
	tasks := make([]task[*NFT], 0, len(links))
	for _, link := range links {
		link := link
		tasks = append(tasks, task[*NFT]{url: link.URL, run: func(ctx context.Context) (*NFT, error) {
			return p.fetchNFT(ctx, link)
		}})
	}
	return runAll(ctx, p.Sugar, tasks)
}

// ProcessCollections is ProcessMessage for collection and project links.
func (p *Previewer) ProcessCollections(ctx context.Context, text string) ([]*Collection, error) {
	links := DetectCollectionLinks(text)
	if len(links) == 0 {
		return nil, ErrNoLinksFound
	}
	tasks := make([]task[*Collection], 0, len(links))
	for _, link := range links {
		link := link
		tasks = append(tasks, task[*Collection]{url: link.URL, run: func(ctx context.Context) (*Collection, error) {
			return p.fetchCollection(ctx, link)
		}})
	}
	return runAll(ctx, p.Sugar, tasks)
}

func (p *Previewer) fetchNFT(ctx context.Context, link NFTLink) (*NFT, error) {
	path := link.Contract
	if path == "" {
		path = link.Marketplace.contractPath()
	}
	contract, err := p.resolver.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}

	switch link.Marketplace.source() {
	case FromChain:
		raw, err := p.chain.Token(ctx, contract, link.TokenID)
		if err != nil {
			return nil, err
		}
		return p.normalizer.NFTFromTzkt(raw, link), nil
	default:
		raw, err := p.market.Token(ctx, contract, link.TokenID)
		if err != nil {
			return nil, err
		}
		return p.normalizer.NFTFromObjkt(raw, link), nil
	}
}

func (p *Previewer) fetchCollection(ctx context.Context, link CollectionLink) (*Collection, error) {
	if link.ProjectID != "" {
		g, err := p.market.Gallery(ctx, link.ProjectID)
		if err != nil {
			return nil, err
		}
		return CollectionFromGallery(g, link)
	}
	contract, err := p.resolver.Resolve(ctx, link.Contract)
	if err != nil {
		return nil, err
	}
	fa, err := p.market.Collection(ctx, contract)
	if err != nil {
		return nil, err
	}
	return CollectionFromFa(fa, link), nil
}

type task[T any] struct {
	url string
	run func(ctx context.Context) (T, error)
}

// runAll runs every task in its own goroutine and keeps the successes in task
// order. Tasks outlive the caller's cancellation; each upstream call is bounded
// by the client timeout instead.
func runAll[T any](ctx context.Context, sugar *zap.SugaredLogger, tasks []task[T]) ([]T, error) {
	ctx = context.WithoutCancel(ctx)
	results := make([]T, len(tasks))
	errs := make([]error, len(tasks))

	var wg sync.WaitGroup
	for i, t := range tasks {
		wg.Add(1)
		go func(i int, t task[T]) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("panic: %v: %w", r, ErrTransport)
				}
			}()
			results[i], errs[i] = t.run(ctx)
		}(i, t)
	}
	wg.Wait()

	var out []T
	var failures []LinkError
	for i, t := range tasks {
		if errs[i] != nil {
			sugar.Errorf("preview %s error: %s", t.url, errs[i])
			failures = append(failures, LinkError{URL: t.url, Err: errs[i]})
			continue
		}
		out = append(out, results[i])
	}
	if len(out) == 0 {
		return nil, &AggregateError{Failures: failures}
	}
	if len(failures) > 0 {
		sugar.Infof("%d of %d links previewed", len(out), len(tasks))
	}
	return out, nil
}
