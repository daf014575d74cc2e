package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/quotewiz/internal/calculator"
	"github.com/mmynk/quotewiz/internal/middleware"
	"github.com/mmynk/quotewiz/internal/models"
	"github.com/mmynk/quotewiz/internal/rpc"
	"github.com/mmynk/quotewiz/internal/validation"
	"github.com/mmynk/quotewiz/internal/wizard"
)

// QuoteService implements the Connect QuoteService on top of the quote engine.
type QuoteService struct {
	rpc.UnimplementedQuoteServiceHandler

	engine    *calculator.Engine
	validator *validation.Validator
	latency   time.Duration
	logger    *slog.Logger

	quotesComputed prometheus.Counter
	bestPremium    prometheus.Histogram
}

// Option configures a QuoteService.
type Option func(*QuoteService)

// WithLatency adds a fixed pause before quotes are returned, imitating a remote rating service.
// The pause never changes the result.
func WithLatency(d time.Duration) Option {
	return func(s *QuoteService) { s.latency = d }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(s *QuoteService) { s.logger = logger }
}

// WithMetrics registers quote instruments with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *QuoteService) {
		s.quotesComputed = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quotewiz",
			Name:      "quotes_computed_total",
			Help:      "Quote responses returned to callers.",
		})
		s.bestPremium = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quotewiz",
			Name:      "best_monthly_premium",
			Help:      "Monthly premium of the recommended quote, in dollars.",
			Buckets:   prometheus.LinearBuckets(50, 25, 10),
		})
		reg.MustRegister(s.quotesComputed, s.bestPremium)
	}
}

// NewQuoteService creates a QuoteService with the given engine and validator.
func NewQuoteService(engine *calculator.Engine, validator *validation.Validator, opts ...Option) *QuoteService {
	s := &QuoteService{
		engine:    engine,
		validator: validator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote validates a complete form and prices it. It is the transport-free core of GetQuotes.
//
// A cancelled context during the simulated latency returns the context error and no quotes.
func (s *QuoteService) Quote(ctx context.Context, form models.FormData) (*models.QuotesResponse, error) {
	if !form.Complete() {
		return nil, fmt.Errorf("%w: every wizard step must be submitted first", calculator.ErrIncompleteInput)
	}
	if err := s.validator.FormData(form); err != nil {
		return nil, err
	}

	if err := pause(ctx, s.latency); err != nil {
		return nil, err
	}

	resp, err := s.engine.ComputeQuotes(form)
	if err != nil {
		return nil, err
	}

	for _, q := range resp.Quotes {
		s.logger.Debug("Quote computed",
			"provider", q.Provider,
			"monthly", q.MonthlyPremium,
			"annual", q.AnnualPremium,
			"recommended", q.IsRecommended,
		)
	}
	if s.quotesComputed != nil {
		s.quotesComputed.Inc()
		if resp.BestMatch != nil {
			s.bestPremium.Observe(float64(resp.BestMatch.MonthlyPremium))
		}
	}
	return resp, nil
}

// GetQuotes handles quote requests.
func (s *QuoteService) GetQuotes(ctx context.Context, req *connect.Request[models.FormData]) (*connect.Response[models.QuotesResponse], error) {
	resp, err := s.Quote(ctx, *req.Msg)
	if err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			s.logger.Debug("Form rejected", "request_id", middleware.GetRequestID(ctx), "fields", fieldErrs.Fields())
		}
		return nil, toConnectError(err)
	}

	s.logger.Info("Quotes ready",
		"request_id", middleware.GetRequestID(ctx),
		"quotes", len(resp.Quotes),
		"best_monthly", resp.BestMatch.MonthlyPremium,
		"average", resp.AveragePremium,
	)
	return connect.NewResponse(resp), nil
}

// ValidateStep reports field-level problems with the payload of one wizard step.
func (s *QuoteService) ValidateStep(ctx context.Context, req *connect.Request[rpc.ValidateStepRequest]) (*connect.Response[rpc.ValidateStepResponse], error) {
	step, ok := wizard.ParseStep(req.Msg.Step)
	if !ok {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown step %q", req.Msg.Step))
	}

	err := s.validator.Step(step, req.Msg.FormData)
	var fieldErrs validation.Errors
	switch {
	case err == nil:
		return connect.NewResponse(&rpc.ValidateStepResponse{Valid: true}), nil
	case errors.As(err, &fieldErrs):
		s.logger.Debug("Step rejected", "step", step.Slug(), "fields", fieldErrs.Fields())
		return connect.NewResponse(&rpc.ValidateStepResponse{Errors: fieldErrs}), nil
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
}

// toConnectError maps domain errors onto Connect codes. Incomplete input is a caller
// ordering bug; everything the user can fix is InvalidArgument.
func toConnectError(err error) *connect.Error {
	var fieldErrs validation.Errors
	switch {
	case errors.Is(err, calculator.ErrIncompleteInput):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.As(err, &fieldErrs), errors.Is(err, calculator.ErrMalformedField):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
