package voltax

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const flutterwaveBaseURL = "https://api.flutterwave.com/v3"

// FlutterwaveConfig carries the Flutterwave credentials.
type FlutterwaveConfig struct {
	SecretKey string
}

// FlutterwaveAdapter talks to the Flutterwave v3 payments API.
type FlutterwaveAdapter struct {
	client *resty.Client
	logger *zap.SugaredLogger
}

// NewFlutterwaveAdapter validates the credentials and builds the adapter.
func NewFlutterwaveAdapter(cfg FlutterwaveConfig, opts ...Option) (*FlutterwaveAdapter, error) {
	if cfg.SecretKey == "" {
		return nil, newValidationError("Flutterwave secret key is required")
	}
	o := newAdapterOptions(opts)
	client := resty.New().
		SetBaseURL(flutterwaveBaseURL).
		SetTimeout(defaultTimeout).
		SetAuthToken(cfg.SecretKey).
		SetHeader("Content-Type", "application/json")
	return &FlutterwaveAdapter{client: client, logger: o.logger}, nil
}

type flutterwaveCustomer struct {
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}

type flutterwaveCustomizations struct {
	Title string `json:"title,omitempty"`
	Logo  string `json:"logo,omitempty"`
}

type flutterwaveConfiguration struct {
	SessionDuration int `json:"session_duration,omitempty"`
}

type flutterwaveInitPayload struct {
	Amount          float64                   `json:"amount"`
	TxRef           string                    `json:"tx_ref"`
	Currency        Currency                  `json:"currency"`
	RedirectURL     string                    `json:"redirect_url,omitempty"`
	Customer        flutterwaveCustomer       `json:"customer"`
	Customizations  flutterwaveCustomizations `json:"customizations"`
	Configuration   flutterwaveConfiguration  `json:"configuration"`
	MaxRetryAttempt int                       `json:"max_retry_attempt,omitempty"`
	PaymentPlan     int                       `json:"payment_plan,omitempty"`
	PaymentOptions  string                    `json:"payment_options,omitempty"`
	LinkExpiration  *time.Time                `json:"link_expiration,omitempty"`
	Subaccounts     []FlutterwaveSubaccount   `json:"subaccounts,omitempty"`
	Meta            []map[string]any          `json:"meta,omitempty"`
}

type flutterwaveInitData struct {
	Link string `json:"link"`
}

type flutterwaveInitResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Data    flutterwaveInitData `json:"data"`
}

type flutterwaveTransaction struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
	TxRef  string `json:"tx_ref"`
	FlwRef string `json:"flw_ref"`
}

type flutterwaveVerifyResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    flutterwaveTransaction `json:"data"`
}

// flutterwaveMeta reshapes the caller metadata into the array of singleton
// objects keyed meta_0, meta_1, ... that the gateway expects. Keys are
// enumerated in sorted order so the indices are deterministic.
func flutterwaveMeta(metadata map[string]any) []map[string]any {
	if len(metadata) == 0 {
		return nil
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	meta := make([]map[string]any, 0, len(keys))
	for i, k := range keys {
		meta = append(meta, map[string]any{fmt.Sprintf("meta_%d", i): metadata[k]})
	}
	return meta
}

// InitiatePayment creates a Flutterwave hosted payment link.
func (a *FlutterwaveAdapter) InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*PaymentResponse, error) {
	if err := validateFlutterwaveRequest(req); err != nil {
		return nil, err
	}

	payload := flutterwaveInitPayload{
		Amount:      req.Amount,
		TxRef:       req.Reference,
		Currency:    req.Currency,
		RedirectURL: req.CallbackURL,
		Customer:    flutterwaveCustomer{Email: req.Email},
		Customizations: flutterwaveCustomizations{
			Title: req.Description,
		},
		Meta: flutterwaveMeta(req.Metadata),
	}
	if o := req.Flutterwave; o != nil {
		payload.Customer.PhoneNumber = o.MobileNumber
		payload.Customer.CustomerName = o.CustomerName
		if o.PageTitle != "" {
			payload.Customizations.Title = o.PageTitle
		}
		payload.Customizations.Logo = o.LogoURL
		payload.Configuration.SessionDuration = o.SessionDuration
		payload.MaxRetryAttempt = o.MaxRetryAttempts
		payload.PaymentPlan = o.PaymentPlan
		payload.PaymentOptions = o.PaymentOptions
		payload.LinkExpiration = o.LinkExpiration
		payload.Subaccounts = o.Subaccounts
	}

	var out flutterwaveInitResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post("/payments")
	if err != nil || resp.IsError() {
		return nil, classifyGatewayFailure("Flutterwave", resp, err)
	}
	a.logger.Debugw("flutterwave payment initiated", "reference", req.Reference)

	return &PaymentResponse{
		Status:           StatusPending,
		Reference:        req.Reference,
		AuthorizationURL: out.Data.Link,
		Raw:              rawBody(resp),
	}, nil
}

// VerifyTransaction looks up a transaction by the caller's tx_ref.
func (a *FlutterwaveAdapter) VerifyTransaction(ctx context.Context, reference string) (*PaymentResponse, error) {
	if reference == "" {
		return nil, newValidationError("Reference is required")
	}

	var out flutterwaveVerifyResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("tx_ref", reference).
		SetResult(&out).
		Get("/transactions/verify_by_reference")
	if err != nil || resp.IsError() {
		return nil, classifyGatewayFailure("Flutterwave", resp, err)
	}

	return &PaymentResponse{
		Status:            mapFlutterwaveStatus(out.Data.Status),
		Reference:         out.Data.TxRef,
		ExternalReference: out.Data.FlwRef,
		Raw:               rawBody(resp),
	}, nil
}

// GetPaymentStatus returns only the mapped status for the given reference.
func (a *FlutterwaveAdapter) GetPaymentStatus(ctx context.Context, reference string) (PaymentStatus, error) {
	resp, err := a.VerifyTransaction(ctx, reference)
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

func mapFlutterwaveStatus(status string) PaymentStatus {
	switch status {
	case "successful":
		return StatusSuccess
	case "failed":
		return StatusFailed
	default:
		return StatusPending
	}
}
