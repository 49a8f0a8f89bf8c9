package voltax

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Hubtel splits its API across two hosts: one for hosted checkout, one for
// transaction status, the latter scoped by merchant account.
const (
	hubtelCheckoutEndpoint = "https://payproxyapi.hubtel.com/items/initiate"
	hubtelStatusEndpoint   = "https://api-txnstatus.hubtel.com/transactions/%s/status"
)

// HubtelConfig carries the Hubtel credentials.
type HubtelConfig struct {
	ClientID              string
	ClientSecret          string
	MerchantAccountNumber string
}

// HubtelAdapter talks to Hubtel's hosted checkout and status APIs.
type HubtelAdapter struct {
	client          *resty.Client
	merchantAccount string
	logger          *zap.SugaredLogger

	checkoutURL string
	statusURL   string
}

// NewHubtelAdapter validates the credential triple and builds the adapter.
func NewHubtelAdapter(cfg HubtelConfig, opts ...Option) (*HubtelAdapter, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.MerchantAccountNumber == "" {
		return nil, newValidationError("Hubtel client ID, client secret and merchant account number are required")
	}
	o := newAdapterOptions(opts)
	client := resty.New().
		SetTimeout(defaultTimeout).
		SetBasicAuth(cfg.ClientID, cfg.ClientSecret).
		SetHeader("Content-Type", "application/json")
	return &HubtelAdapter{
		client:          client,
		merchantAccount: cfg.MerchantAccountNumber,
		logger:          o.logger,
		checkoutURL:     hubtelCheckoutEndpoint,
		statusURL:       fmt.Sprintf(hubtelStatusEndpoint, cfg.MerchantAccountNumber),
	}, nil
}

type hubtelInitPayload struct {
	TotalAmount           float64 `json:"totalAmount"`
	Description           string  `json:"description"`
	CallbackURL           string  `json:"callbackUrl"`
	ReturnURL             string  `json:"returnUrl"`
	MerchantAccountNumber string  `json:"merchantAccountNumber"`
	CancellationURL       string  `json:"cancellationUrl"`
	ClientReference       string  `json:"clientReference"`
	PayeeEmail            string  `json:"payeeEmail"`
	PayeeMobileNumber     string  `json:"payeeMobileNumber,omitempty"`
}

type hubtelCheckout struct {
	CheckoutURL       string `json:"checkoutUrl"`
	CheckoutID        string `json:"checkoutId"`
	ClientReference   string `json:"clientReference"`
	CheckoutDirectURL string `json:"checkoutDirectUrl"`
}

type hubtelInitResponse struct {
	ResponseCode string         `json:"responseCode"`
	Status       string         `json:"status"`
	Message      string         `json:"message"`
	Data         hubtelCheckout `json:"data"`
}

type hubtelTransaction struct {
	Date            string  `json:"date"`
	Status          string  `json:"status"`
	TransactionID   string  `json:"transactionId"`
	ClientReference string  `json:"clientReference"`
	Amount          float64 `json:"amount"`
}

type hubtelStatusResponse struct {
	ResponseCode string            `json:"responseCode"`
	Message      string            `json:"message"`
	Data         hubtelTransaction `json:"data"`
}

// InitiatePayment creates a Hubtel hosted checkout session. The amount goes
// out as a plain decimal; Hubtel does not use minor units.
func (a *HubtelAdapter) InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*PaymentResponse, error) {
	if err := validateHubtelRequest(req); err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = "Payment for " + req.Reference
	}
	opts := req.Hubtel
	cancellationURL := opts.CancellationURL
	if cancellationURL == "" {
		cancellationURL = opts.ReturnURL
	}

	payload := hubtelInitPayload{
		TotalAmount:           req.Amount,
		Description:           description,
		CallbackURL:           req.CallbackURL,
		ReturnURL:             opts.ReturnURL,
		MerchantAccountNumber: a.merchantAccount,
		CancellationURL:       cancellationURL,
		ClientReference:       req.Reference,
		PayeeEmail:            req.Email,
		PayeeMobileNumber:     opts.MobileNumber,
	}

	var out hubtelInitResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post(a.checkoutURL)
	if err != nil || resp.IsError() {
		return nil, classifyGatewayFailure("Hubtel", resp, err)
	}
	// Hubtel flags application-level failures on a 2xx response.
	if out.Status != "success" {
		return nil, &GatewayError{
			Provider:   "Hubtel",
			StatusCode: resp.StatusCode(),
			Message:    "Hubtel initialization failed",
			Body:       rawBody(resp),
		}
	}
	a.logger.Debugw("hubtel checkout created", "reference", out.Data.ClientReference, "checkoutId", out.Data.CheckoutID)

	return &PaymentResponse{
		Status:            StatusPending,
		Reference:         out.Data.ClientReference,
		AuthorizationURL:  out.Data.CheckoutURL,
		ExternalReference: out.Data.CheckoutID,
		Raw:               rawBody(resp),
	}, nil
}

// VerifyTransaction fetches the transaction status for the caller reference
// via Hubtel's merchant-scoped status endpoint.
func (a *HubtelAdapter) VerifyTransaction(ctx context.Context, reference string) (*PaymentResponse, error) {
	if reference == "" {
		return nil, newValidationError("Reference is required")
	}

	var out hubtelStatusResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("clientReference", reference).
		SetResult(&out).
		Get(a.statusURL)
	if err != nil || resp.IsError() {
		return nil, classifyGatewayFailure("Hubtel", resp, err)
	}

	return &PaymentResponse{
		Status:            mapHubtelStatus(out.Data.Status),
		Reference:         out.Data.ClientReference,
		ExternalReference: out.Data.TransactionID,
		Raw:               rawBody(resp),
	}, nil
}

// GetPaymentStatus returns only the mapped status for the given reference.
func (a *HubtelAdapter) GetPaymentStatus(ctx context.Context, reference string) (PaymentStatus, error) {
	resp, err := a.VerifyTransaction(ctx, reference)
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

// mapHubtelStatus translates Hubtel's status vocabulary. Unpaid and anything
// undocumented stay PENDING.
func mapHubtelStatus(status string) PaymentStatus {
	switch status {
	case "Paid":
		return StatusSuccess
	case "Refunded":
		return StatusFailed
	default:
		return StatusPending
	}
}
