package voltax

import (
	"context"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	libertePayBaseURL     = "https://360pay-merchant-api.libertepay.com/v1"
	libertePayTestBaseURL = "https://uat-360pay-merchant-api.libertepay.com/v1"
)

// LibertePayConfig carries the LibertePay credentials. TestEnv switches the
// adapter to the UAT host.
type LibertePayConfig struct {
	SecretKey string
	TestEnv   bool
}

// LibertePayAdapter talks to the LibertePay merchant API.
type LibertePayAdapter struct {
	client *resty.Client
	logger *zap.SugaredLogger
}

// NewLibertePayAdapter validates the credentials and builds the adapter.
func NewLibertePayAdapter(cfg LibertePayConfig, opts ...Option) (*LibertePayAdapter, error) {
	if cfg.SecretKey == "" {
		return nil, newValidationError("LibertePay secret key is required")
	}
	baseURL := libertePayBaseURL
	if cfg.TestEnv {
		baseURL = libertePayTestBaseURL
	}
	o := newAdapterOptions(opts)
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetAuthToken(cfg.SecretKey).
		SetHeader("Content-Type", "application/json")
	return &LibertePayAdapter{client: client, logger: o.logger}, nil
}

type libertePayInitPayload struct {
	Amount      float64 `json:"amount"`
	EmailID     string  `json:"emailid"`
	Reference   string  `json:"reference"`
	PhoneNumber string  `json:"phone_number,omitempty"`
	PaymentSlug string  `json:"payment_slug,omitempty"`
}

type libertePayCheckout struct {
	AccessCode string `json:"access_code"`
	PaymentURL string `json:"payment_url"`
	Reference  string `json:"reference"`
}

type libertePayInitResponse struct {
	Code   string             `json:"Code"`
	Status string             `json:"status"`
	Msg    string             `json:"msg"`
	Data   libertePayCheckout `json:"data"`
}

type libertePayStatusPayload struct {
	TransactionID string `json:"transaction_id"`
}

type libertePayTransaction struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	Amount        string `json:"amount"`
	DateCreated   string `json:"date_created"`
	ExternalTxnID string `json:"external_transaction_id"`
	IsReversed    bool   `json:"isReversed"`
	Message       string `json:"message"`
	StatusCode    string `json:"status_code"`
	TransactionID string `json:"transaction_id"`
}

type libertePayStatusResponse struct {
	Code   string                `json:"Code"`
	Status string                `json:"status"`
	Msg    string                `json:"msg"`
	Data   libertePayTransaction `json:"data"`
}

// InitiatePayment starts a LibertePay transaction. The caller reference is
// mandatory; LibertePay sends it verbatim on the wire.
func (a *LibertePayAdapter) InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*PaymentResponse, error) {
	if err := validateLibertePayRequest(req); err != nil {
		return nil, err
	}

	payload := libertePayInitPayload{
		Amount:    req.Amount,
		EmailID:   req.Email,
		Reference: req.Reference,
	}
	if o := req.LibertePay; o != nil {
		payload.PhoneNumber = o.MobileNumber
		payload.PaymentSlug = o.PaymentSlug
	}

	var out libertePayInitResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post("/transactions/initiate")
	if err != nil || resp.IsError() {
		return nil, classifyGatewayFailure("LibertePay", resp, err)
	}
	a.logger.Debugw("libertepay payment initiated", "reference", req.Reference)

	return &PaymentResponse{
		Status:            StatusPending,
		Reference:         req.Reference,
		AuthorizationURL:  out.Data.PaymentURL,
		ExternalReference: out.Data.Reference,
		Raw:               rawBody(resp),
	}, nil
}

// VerifyTransaction checks a transaction via the status-check endpoint,
// which takes the identifier in a POST body.
func (a *LibertePayAdapter) VerifyTransaction(ctx context.Context, reference string) (*PaymentResponse, error) {
	if reference == "" {
		return nil, newValidationError("Transaction reference is required for verification")
	}

	var out libertePayStatusResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(libertePayStatusPayload{TransactionID: reference}).
		SetResult(&out).
		Post("/payments/status-check")
	if err != nil || resp.IsError() {
		return nil, classifyGatewayFailure("LibertePay", resp, err)
	}

	return &PaymentResponse{
		Status:            mapLibertePayStatus(out.Data.StatusCode),
		Reference:         reference,
		ExternalReference: out.Data.TransactionID,
		Raw:               rawBody(resp),
	}, nil
}

// GetPaymentStatus returns only the mapped status for the given reference.
func (a *LibertePayAdapter) GetPaymentStatus(ctx context.Context, reference string) (PaymentStatus, error) {
	resp, err := a.VerifyTransaction(ctx, reference)
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

func mapLibertePayStatus(status string) PaymentStatus {
	switch status {
	case "success":
		return StatusSuccess
	case "failed", "reversed", "abandoned":
		return StatusFailed
	default:
		return StatusPending
	}
}
