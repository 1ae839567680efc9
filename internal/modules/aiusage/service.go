// README: Monthly allowance of advisory generations, reset lazily on the first use of a new month.
package aiusage

import (
	"context"
	"errors"
	"log"
	"time"
)

// Service orchestrates quota logic.
type Service struct {
	store     Store
	allowance int
	now       func() time.Time
}

// NewService falls back to DefaultAllowance when allowance is not positive.
func NewService(store Store, allowance int) *Service {
	if allowance <= 0 {
		allowance = DefaultAllowance
	}
	return &Service{store: store, allowance: allowance, now: time.Now}
}

func (s *Service) month() string {
	return s.now().UTC().Format("2006-01")
}

// UseToken deducts one generation from scope's monthly allowance.
// A missing bucket is initialised and the deduction retried once.
func (s *Service) UseToken(ctx context.Context, scope string) error {
	month := s.month()
	ok, err := s.store.Consume(ctx, scope, month, s.allowance)
	if err != nil || ok {
		return err
	}
	if err := s.store.Ensure(ctx, scope, month, s.allowance); err != nil {
		return err
	}
	ok, err = s.store.Consume(ctx, scope, month, s.allowance)
	if err != nil {
		return err
	}
	if !ok {
		log.Printf("[AIUSAGE] action=use scope=%s month=%s quota exhausted", scope, month)
		return ErrQuotaExhausted
	}
	return nil
}

// Remaining reports the bucket as the next call would see it: a stale month
// counts as a full allowance.
func (s *Service) Remaining(ctx context.Context, scope string) (Usage, error) {
	month := s.month()
	u, err := s.store.Get(ctx, scope)
	if errors.Is(err, errNoBucket) || (err == nil && u.Month < month) {
		return Usage{Scope: scope, Remaining: s.allowance, Month: month}, nil
	}
	return u, err
}
