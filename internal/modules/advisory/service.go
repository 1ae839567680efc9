// README: Advisory text generation (proposal email, cost tips); the latest request wins.
package advisory

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"tourcalc/internal/ai"
	"tourcalc/internal/modules/pricing"
	"tourcalc/internal/modules/trip"
)

var (
	ErrDisabled   = errors.New("advisory disabled")
	ErrBadRequest = errors.New("bad request")
)

// Message shown to the operator; the cause only goes to the log.
const failedMessage = "generation failed"

type Kind string

const (
	KindProposal Kind = "proposal"
	KindAnalysis Kind = "analysis"
)

func ParseKind(v string) (Kind, error) {
	switch Kind(v) {
	case KindProposal, KindAnalysis:
		return Kind(v), nil
	}
	return "", ErrBadRequest
}

type Ticket int64

type Status struct {
	Busy   bool   `json:"busy"`
	Ticket Ticket `json:"ticket"`
	Kind   Kind   `json:"kind,omitempty"`
	Text   string `json:"text,omitempty"`
	Error  string `json:"error,omitempty"`
}

type Service struct {
	gen     ai.TextGenerator
	timeout time.Duration

	mu     sync.Mutex
	seq    Ticket
	cancel context.CancelFunc
	status Status
	wg     sync.WaitGroup
}

// NewService accepts a nil generator; Start then reports ErrDisabled.
func NewService(gen ai.TextGenerator, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Service{gen: gen, timeout: timeout}
}

func (s *Service) Enabled() bool {
	return s.gen != nil
}

// Start cancels any in-flight request and begins a new one. Only the result of
// the newest ticket is kept.
func (s *Service) Start(kind Kind, p trip.Params, b pricing.Breakdown) (Ticket, error) {
	if s.gen == nil {
		return 0, ErrDisabled
	}
	var prompt string
	switch kind {
	case KindProposal:
		prompt = ai.ProposalPrompt(p, b)
	case KindAnalysis:
		prompt = ai.AnalysisPrompt(b)
	default:
		return 0, ErrBadRequest
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	ticket := s.seq
	s.cancel = cancel
	s.status = Status{Busy: true, Ticket: ticket, Kind: kind}
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(ctx, cancel, ticket, kind, prompt)
	return ticket, nil
}

func (s *Service) run(ctx context.Context, cancel context.CancelFunc, ticket Ticket, kind Kind, prompt string) {
	defer s.wg.Done()
	defer cancel()

	text, err := s.gen.Generate(ctx, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.seq {
		log.Printf("[ADVISORY] action=%s ticket=%d superseded by %d", kind, ticket, s.seq)
		return
	}
	s.cancel = nil
	s.status.Busy = false
	if err != nil {
		log.Printf("[ADVISORY] action=%s ticket=%d failed: %v", kind, ticket, err)
		s.status.Error = failedMessage
		return
	}
	s.status.Text = text
}

func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Close cancels the in-flight request and waits for its goroutine.
func (s *Service) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}
