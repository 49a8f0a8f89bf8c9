package voltax

import (
	"context"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const moolreBaseURL = "https://api.moolre.com"

// MoolreConfig carries the Moolre credential triple.
type MoolreConfig struct {
	APIUser       string
	APIPublicKey  string
	AccountNumber string
}

// MoolreAdapter talks to the Moolre embed-link and transaction APIs.
type MoolreAdapter struct {
	client        *resty.Client
	accountNumber string
	logger        *zap.SugaredLogger
}

// NewMoolreAdapter validates the credential triple and builds the adapter.
func NewMoolreAdapter(cfg MoolreConfig, opts ...Option) (*MoolreAdapter, error) {
	if cfg.APIUser == "" || cfg.APIPublicKey == "" || cfg.AccountNumber == "" {
		return nil, newValidationError("Moolre API user, public key and account number are required")
	}
	o := newAdapterOptions(opts)
	client := resty.New().
		SetBaseURL(moolreBaseURL).
		SetTimeout(defaultTimeout).
		SetHeader("X-API-USER", cfg.APIUser).
		SetHeader("X-API-PUBKEY", cfg.APIPublicKey).
		SetHeader("Content-Type", "application/json")
	return &MoolreAdapter{client: client, accountNumber: cfg.AccountNumber, logger: o.logger}, nil
}

// Moolre's link API takes the merchant account twice: camel-cased for the
// link owner and lower-cased for the collection account, which the caller
// may override.
type moolreInitPayload struct {
	Type              int            `json:"type"`
	Amount            float64        `json:"amount"`
	AccountNumber     string         `json:"accountNumber"`
	Email             string         `json:"email"`
	ExternalRef       string         `json:"externalref"`
	Callback          string         `json:"callback"`
	Redirect          string         `json:"redirect"`
	Reusable          string         `json:"reusable"`
	Currency          Currency       `json:"currency"`
	CollectionAccount string         `json:"accountnumber"`
	Metadata          map[string]any `json:"metadata"`
}

type moolrePaymentLink struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

type moolreInitResponse struct {
	Status  int               `json:"status"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Data    moolrePaymentLink `json:"data"`
}

type moolreStatusPayload struct {
	Type          int    `json:"type"`
	IDType        int    `json:"idtype"`
	ID            string `json:"id"`
	AccountNumber string `json:"accountnumber"`
}

type moolreTransaction struct {
	TxStatus      int    `json:"txstatus"`
	TxType        int    `json:"txtype"`
	AccountNumber string `json:"accountnumber"`
	Payer         string `json:"payer"`
	Payee         string `json:"payee"`
	Amount        string `json:"amount"`
	Value         string `json:"value"`
	TransactionID string `json:"transactionid"`
	ExternalRef   string `json:"externalref"`
	ThirdPartyRef string `json:"thirdpartyref"`
	Timestamp     string `json:"ts"`
}

type moolreStatusResponse struct {
	Status  int               `json:"status"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Data    moolreTransaction `json:"data"`
}

// InitiatePayment creates a Moolre payment link.
func (a *MoolreAdapter) InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*PaymentResponse, error) {
	if err := validateMoolreRequest(req); err != nil {
		return nil, err
	}

	opts := req.Moolre
	reusable := "0"
	if opts.LinkReusable {
		reusable = "1"
	}
	collectionAccount := opts.AccountNumberOverride
	if collectionAccount == "" {
		collectionAccount = a.accountNumber
	}
	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	payload := moolreInitPayload{
		Type:              1,
		Amount:            req.Amount,
		AccountNumber:     a.accountNumber,
		Email:             req.Email,
		ExternalRef:       req.Reference,
		Callback:          req.CallbackURL,
		Redirect:          opts.RedirectURL,
		Reusable:          reusable,
		Currency:          req.Currency,
		CollectionAccount: collectionAccount,
		Metadata:          metadata,
	}

	var out moolreInitResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post("/embed/link")
	if err != nil || resp.IsError() {
		return nil, classifyGatewayFailure("Moolre", resp, err)
	}
	a.logger.Debugw("moolre payment link created", "reference", out.Data.Reference)

	// Moolre's link API echoes one reference for both identifiers.
	return &PaymentResponse{
		Status:            StatusPending,
		Reference:         out.Data.Reference,
		AuthorizationURL:  out.Data.AuthorizationURL,
		ExternalReference: out.Data.Reference,
		Raw:               rawBody(resp),
	}, nil
}

// VerifyTransaction checks a transaction by the caller's external reference.
// The response carries the gateway's own transaction id separately from the
// echoed caller reference; both are surfaced on their respective fields.
func (a *MoolreAdapter) VerifyTransaction(ctx context.Context, reference string) (*PaymentResponse, error) {
	if reference == "" {
		return nil, newValidationError("Reference is required for verification")
	}

	payload := moolreStatusPayload{
		Type:          1,
		IDType:        1,
		ID:            reference,
		AccountNumber: a.accountNumber,
	}

	var out moolreStatusResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post("/open/transact/status")
	if err != nil || resp.IsError() {
		return nil, classifyGatewayFailure("Moolre", resp, err)
	}

	return &PaymentResponse{
		Status:            mapMoolreStatus(out.Data.TxStatus),
		Reference:         out.Data.ExternalRef,
		ExternalReference: out.Data.TransactionID,
		Raw:               rawBody(resp),
	}, nil
}

// GetPaymentStatus returns only the mapped status for the given reference.
func (a *MoolreAdapter) GetPaymentStatus(ctx context.Context, reference string) (PaymentStatus, error) {
	resp, err := a.VerifyTransaction(ctx, reference)
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

// mapMoolreStatus translates Moolre's numeric transaction codes.
func mapMoolreStatus(status int) PaymentStatus {
	switch status {
	case 1:
		return StatusSuccess
	case 2:
		return StatusFailed
	default:
		return StatusPending
	}
}
