package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/contas/internal/entry"
)

var (
	ErrInvalidDays = fmt.Errorf("days must be between 1 and %d", MaxCashflowDays)
	ErrCacheMiss   = errors.New("report cache miss")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	// OpenBalances returns the remaining amount of every live open or partial entry.
	OpenBalances(ctx context.Context) ([]Balance, error)
	// PaymentFlows returns payment totals per day and entry type for from..to inclusive.
	PaymentFlows(ctx context.Context, from, to time.Time) ([]Flow, error)
}

// Cache stores rendered reports. Get reports the version it read, including on a miss,
// and Set stores under that version: a value built before an Invalidate is never served
// after it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, int64, error)
	Set(ctx context.Context, key string, version int64, value []byte) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo  Repository
	cache Cache
}

// NewService returns a report service. cache may be nil.
func NewService(repo Repository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) Summary(ctx context.Context, today time.Time) (Summary, error) {
	return cached(ctx, s.cache, "summary:"+dayKey(today), func() (Summary, error) {
		balances, err := s.repo.OpenBalances(ctx)
		if err != nil {
			return Summary{}, fmt.Errorf("loading open balances: %w", err)
		}

		return summarize(balances, today), nil
	})
}

func (s *Service) Aging(ctx context.Context, today time.Time) (Aging, error) {
	return cached(ctx, s.cache, "aging:"+dayKey(today), func() (Aging, error) {
		balances, err := s.repo.OpenBalances(ctx)
		if err != nil {
			return Aging{}, fmt.Errorf("loading open balances: %w", err)
		}

		return age(balances, today), nil
	})
}

// Cashflow returns one point per day for the days ending today. Zero days means the
// default window.
func (s *Service) Cashflow(ctx context.Context, today time.Time, days int) ([]CashflowPoint, error) {
	if days == 0 {
		days = DefaultCashflowDays
	}

	if days < 1 || days > MaxCashflowDays {
		return nil, ErrInvalidDays
	}

	key := fmt.Sprintf("cashflow:%s:%d", dayKey(today), days)

	return cached(ctx, s.cache, key, func() ([]CashflowPoint, error) {
		from, to := cashflowWindow(today, days)

		flows, err := s.repo.PaymentFlows(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("loading payment flows: %w", err)
		}

		return cashflow(flows, from, to), nil
	})
}

// Dashboard builds the summary, aging and default cashflow reports concurrently.
func (s *Service) Dashboard(ctx context.Context, today time.Time) (*Dashboard, error) {
	var d Dashboard

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := s.Summary(gctx, today)
		d.Summary = summary

		return err
	})

	g.Go(func() error {
		aging, err := s.Aging(gctx, today)
		d.Aging = aging

		return err
	})

	g.Go(func() error {
		points, err := s.Cashflow(gctx, today, DefaultCashflowDays)
		d.Cashflow = points

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &d, nil
}

func dayKey(t time.Time) string {
	return entry.DateOnly(t).Format(time.DateOnly)
}

// cached serves key from cache when present and fills it otherwise. Cache errors are
// logged and never fail the report.
func cached[T any](ctx context.Context, cache Cache, key string, build func() (T, error)) (T, error) {
	if cache == nil {
		return build()
	}

	raw, version, err := cache.Get(ctx, key)
	if err == nil {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		slog.WarnContext(ctx, "report cache read failed", "key", key, "error", err)

		return build()
	}

	v, err := build()
	if err != nil {
		return v, err
	}

	raw, err = json.Marshal(v)
	if err == nil {
		err = cache.Set(ctx, key, version, raw)
	}

	if err != nil {
		slog.WarnContext(ctx, "report cache write failed", "key", key, "error", err)
	}

	return v, nil
}

// Invalidator drops cached reports whenever an entry or payment changes.
type Invalidator struct {
	cache Cache
}

func NewInvalidator(cache Cache) *Invalidator {
	return &Invalidator{cache: cache}
}

func (i *Invalidator) Notify(ctx context.Context, ev entry.Event) error {
	if err := i.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidating reports after %s: %w", ev.Kind, err)
	}

	return nil
}
