package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/quotewiz/internal/calculator"
	"github.com/mmynk/quotewiz/internal/models"
	"github.com/mmynk/quotewiz/internal/rpc"
	"github.com/mmynk/quotewiz/internal/service"
	"github.com/mmynk/quotewiz/internal/validation"
)

// quoter prices a complete form, in process or through a server.
type quoter interface {
	Quote(ctx context.Context, form models.FormData) (*models.QuotesResponse, error)
}

// retryableError is a failure the user can do nothing about except try again.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }

func (e *retryableError) Unwrap() error { return e.err }

type remoteQuoter struct {
	client rpc.QuoteServiceClient
}

func (r remoteQuoter) Quote(ctx context.Context, form models.FormData) (*models.QuotesResponse, error) {
	resp, err := r.client.GetQuotes(ctx, connect.NewRequest(&form))
	if err != nil {
		switch connect.CodeOf(err) {
		case connect.CodeInvalidArgument, connect.CodeFailedPrecondition:
			return nil, err
		default:
			return nil, &retryableError{err: err}
		}
	}
	return resp.Msg, nil
}

// newQuoter returns a remote quoter when serverURL is set and a local one otherwise.
func newQuoter(serverURL string, latency time.Duration) quoter {
	if serverURL != "" {
		return remoteQuoter{client: rpc.NewQuoteServiceClient(http.DefaultClient, serverURL)}
	}
	return service.NewQuoteService(calculator.NewEngine(), validation.New(), service.WithLatency(latency))
}

// isRetryable reports whether trying again may succeed: transport failures and
// quotes that did not arrive before the deadline.
func isRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
