package voltax

import (
	"context"
	"encoding/json"
	"math"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const paystackBaseURL = "https://api.paystack.co"

// PaystackConfig carries the Paystack credentials.
type PaystackConfig struct {
	SecretKey string
}

// PaystackAdapter talks to the Paystack transaction API.
type PaystackAdapter struct {
	client *resty.Client
	logger *zap.SugaredLogger
}

// NewPaystackAdapter validates the credentials and builds the adapter. The
// HTTP client is fixed here and never reconfigured afterwards.
func NewPaystackAdapter(cfg PaystackConfig, opts ...Option) (*PaystackAdapter, error) {
	if cfg.SecretKey == "" {
		return nil, newValidationError("Paystack secret key is required")
	}
	o := newAdapterOptions(opts)
	client := resty.New().
		SetBaseURL(paystackBaseURL).
		SetTimeout(defaultTimeout).
		SetAuthToken(cfg.SecretKey).
		SetHeader("Content-Type", "application/json")
	return &PaystackAdapter{client: client, logger: o.logger}, nil
}

type paystackInitPayload struct {
	Amount            string            `json:"amount"`
	Email             string            `json:"email"`
	Reference         string            `json:"reference,omitempty"`
	CallbackURL       string            `json:"callback_url,omitempty"`
	Metadata          string            `json:"metadata"`
	Channels          []PaystackChannel `json:"channels,omitempty"`
	Subaccount        string            `json:"subaccount,omitempty"`
	SplitCode         string            `json:"split_code,omitempty"`
	Bearer            string            `json:"bearer,omitempty"`
	TransactionCharge float64           `json:"transaction_charge,omitempty"`
	Plan              string            `json:"plan,omitempty"`
	InvoiceLimit      int               `json:"invoice_limit,omitempty"`
	Currency          Currency          `json:"currency"`
}

type paystackInitData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackInitResponse struct {
	Status  bool             `json:"status"`
	Message string           `json:"message"`
	Data    paystackInitData `json:"data"`
}

type paystackTransaction struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	Reference string `json:"reference"`
}

type paystackVerifyResponse struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    paystackTransaction `json:"data"`
}

type paystackBanksResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    []Bank `json:"data"`
}

// Bank is one entry from Paystack's bank directory.
type Bank struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Code     string `json:"code"`
	Currency string `json:"currency"`
	Type     string `json:"type"`
	Country  string `json:"country"`
}

// BankListResponse is the canonical result of a bank directory lookup.
type BankListResponse struct {
	Status PaymentStatus   `json:"status"`
	Banks  []Bank          `json:"banks"`
	Raw    json.RawMessage `json:"raw,omitempty"`
}

// InitiatePayment starts a Paystack transaction. Paystack expects the amount
// in minor units as a string (e.g. 10.50 GHS -> "1050") and the metadata
// object pre-serialized into a JSON string on the wire.
func (a *PaystackAdapter) InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*PaymentResponse, error) {
	if err := validatePaystackRequest(req); err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = "Payment for " + req.Reference
	}
	meta := map[string]any{"description": description}
	for k, v := range req.Metadata {
		meta[k] = v
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}

	payload := paystackInitPayload{
		Amount:      strconv.FormatInt(int64(math.Round(req.Amount*100)), 10),
		Email:       req.Email,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata:    string(metaJSON),
		Currency:    req.Currency,
	}
	if o := req.Paystack; o != nil {
		payload.Channels = o.Channels
		payload.Subaccount = o.Subaccount
		payload.SplitCode = o.SplitCode
		payload.Bearer = o.Bearer
		payload.TransactionCharge = o.TransactionCharge
		payload.Plan = o.Plan
		payload.InvoiceLimit = o.InvoiceLimit
	}

	var out paystackInitResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post("/transaction/initialize")
	if err != nil || resp.IsError() {
		return nil, classifyGatewayFailure("Paystack", resp, err)
	}
	a.logger.Debugw("paystack payment initiated", "reference", out.Data.Reference)

	return &PaymentResponse{
		Status:            StatusPending,
		Reference:         out.Data.Reference,
		AuthorizationURL:  out.Data.AuthorizationURL,
		ExternalReference: out.Data.Reference,
		Raw:               rawBody(resp),
	}, nil
}

// VerifyTransaction fetches the transaction state for the given reference.
func (a *PaystackAdapter) VerifyTransaction(ctx context.Context, reference string) (*PaymentResponse, error) {
	if reference == "" {
		return nil, newValidationError("Transaction reference is required for verification")
	}

	var out paystackVerifyResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/transaction/verify/" + url.PathEscape(reference))
	if err != nil || resp.IsError() {
		return nil, classifyGatewayFailure("Paystack", resp, err)
	}

	result := &PaymentResponse{
		Status:    mapPaystackStatus(out.Data.Status),
		Reference: out.Data.Reference,
		Raw:       rawBody(resp),
	}
	if out.Data.ID != 0 {
		result.ExternalReference = strconv.FormatInt(out.Data.ID, 10)
	}
	return result, nil
}

// GetPaymentStatus returns only the mapped status for the given reference.
func (a *PaystackAdapter) GetPaymentStatus(ctx context.Context, reference string) (PaymentStatus, error) {
	resp, err := a.VerifyTransaction(ctx, reference)
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

// ListBanks fetches Paystack's bank directory for a country code.
func (a *PaystackAdapter) ListBanks(ctx context.Context, country string) (*BankListResponse, error) {
	var out paystackBanksResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("country", country).
		SetResult(&out).
		Get("/bank")
	if err != nil || resp.IsError() {
		return nil, classifyGatewayFailure("Paystack", resp, err)
	}
	return &BankListResponse{
		Status: StatusSuccess,
		Banks:  out.Data,
		Raw:    rawBody(resp),
	}, nil
}

// mapPaystackStatus translates Paystack's transaction vocabulary. Anything
// undocumented stays PENDING rather than guessing a terminal outcome.
func mapPaystackStatus(status string) PaymentStatus {
	switch status {
	case "success":
		return StatusSuccess
	case "failed", "reversed", "abandoned":
		return StatusFailed
	default:
		return StatusPending
	}
}
