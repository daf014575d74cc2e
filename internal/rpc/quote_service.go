// Package rpc defines the Connect wire contract of the quote service: procedure names,
// request/response messages, handler and client constructors.
//
// Messages are plain Go structs carried as JSON, so the browser form can post the
// same payloads it builds locally.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/quotewiz/internal/models"
)

const (
	// QuoteServiceName is the fully-qualified name of the QuoteService.
	QuoteServiceName = "quotewiz.v1.QuoteService"

	// QuoteServiceGetQuotesProcedure prices a complete form.
	QuoteServiceGetQuotesProcedure = "/quotewiz.v1.QuoteService/GetQuotes"

	// QuoteServiceValidateStepProcedure checks the payload of one wizard step.
	QuoteServiceValidateStepProcedure = "/quotewiz.v1.QuoteService/ValidateStep"
)

// ValidateStepRequest asks whether the payload a step collects is acceptable.
type ValidateStepRequest struct {
	// Step is the step slug: personalInfo, vehicleInfo, coveragePreferences or quotes.
	Step     string          `json:"step"`
	FormData models.FormData `json:"formData"`
}

// ValidateStepResponse lists field-level problems; Errors is empty when Valid.
type ValidateStepResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Codec marshals messages as JSON. It registers under the "json" name so Connect
// serves and sends application/json bodies.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (Codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

// QuoteServiceHandler is implemented by the server side of the QuoteService.
type QuoteServiceHandler interface {
	GetQuotes(context.Context, *connect.Request[models.FormData]) (*connect.Response[models.QuotesResponse], error)
	ValidateStep(context.Context, *connect.Request[ValidateStepRequest]) (*connect.Response[ValidateStepResponse], error)
}

// NewQuoteServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewQuoteServiceHandler(svc QuoteServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	getQuotes := connect.NewUnaryHandler(QuoteServiceGetQuotesProcedure, svc.GetQuotes, opts...)
	validateStep := connect.NewUnaryHandler(QuoteServiceValidateStepProcedure, svc.ValidateStep, opts...)

	return "/" + QuoteServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case QuoteServiceGetQuotesProcedure:
			getQuotes.ServeHTTP(w, r)
		case QuoteServiceValidateStepProcedure:
			validateStep.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedQuoteServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedQuoteServiceHandler struct{}

func (UnimplementedQuoteServiceHandler) GetQuotes(context.Context, *connect.Request[models.FormData]) (*connect.Response[models.QuotesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("quotewiz.v1.QuoteService.GetQuotes is not implemented"))
}

func (UnimplementedQuoteServiceHandler) ValidateStep(context.Context, *connect.Request[ValidateStepRequest]) (*connect.Response[ValidateStepResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("quotewiz.v1.QuoteService.ValidateStep is not implemented"))
}

// QuoteServiceClient is a client for the QuoteService.
type QuoteServiceClient interface {
	GetQuotes(context.Context, *connect.Request[models.FormData]) (*connect.Response[models.QuotesResponse], error)
	ValidateStep(context.Context, *connect.Request[ValidateStepRequest]) (*connect.Response[ValidateStepResponse], error)
}

// NewQuoteServiceClient constructs a client for the QuoteService served at baseURL.
func NewQuoteServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) QuoteServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &quoteServiceClient{
		getQuotes: connect.NewClient[models.FormData, models.QuotesResponse](
			httpClient, baseURL+QuoteServiceGetQuotesProcedure, opts...,
		),
		validateStep: connect.NewClient[ValidateStepRequest, ValidateStepResponse](
			httpClient, baseURL+QuoteServiceValidateStepProcedure, opts...,
		),
	}
}

type quoteServiceClient struct {
	getQuotes    *connect.Client[models.FormData, models.QuotesResponse]
	validateStep *connect.Client[ValidateStepRequest, ValidateStepResponse]
}

func (c *quoteServiceClient) GetQuotes(ctx context.Context, req *connect.Request[models.FormData]) (*connect.Response[models.QuotesResponse], error) {
	return c.getQuotes.CallUnary(ctx, req)
}

func (c *quoteServiceClient) ValidateStep(ctx context.Context, req *connect.Request[ValidateStepRequest]) (*connect.Response[ValidateStepResponse], error) {
	return c.validateStep.CallUnary(ctx, req)
}
