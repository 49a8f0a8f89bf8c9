package voltax

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// defaultTimeout bounds every gateway round trip. Callers needing a tighter
// deadline pass one through ctx.
const defaultTimeout = 10 * time.Second

// Provider is the common contract every gateway adapter implements.
// Adapters hold no per-transaction state; every call is a single
// request/response round trip correlated by the reference string, so a
// Provider is safe to share across goroutines.
type Provider interface {
	// InitiatePayment validates the request, maps it to the gateway's wire
	// format and starts a payment. The returned status is always
	// StatusPending: the payer has not authorized anything yet.
	InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*PaymentResponse, error)

	// VerifyTransaction fetches a point-in-time snapshot of the transaction
	// identified by the caller's reference and maps the gateway's status
	// vocabulary onto PaymentStatus.
	VerifyTransaction(ctx context.Context, reference string) (*PaymentResponse, error)

	// GetPaymentStatus is a convenience wrapper over VerifyTransaction that
	// returns only the mapped status.
	GetPaymentStatus(ctx context.Context, reference string) (PaymentStatus, error)
}

// InitiatePaymentRequest is the provider-agnostic payment request. The
// provider-specific option structs carry fields meaningful to exactly one
// gateway; an adapter only reads its own.
type InitiatePaymentRequest struct {
	Amount      float64        `json:"amount" validate:"required,gt=0"`
	Email       string         `json:"email" validate:"required,email"`
	Currency    Currency       `json:"currency" validate:"currency"`
	Description string         `json:"description,omitempty" validate:"omitempty,max=255"`
	CallbackURL string         `json:"callbackUrl,omitempty" validate:"omitempty,url"`
	Reference   string         `json:"reference,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`

	Paystack    *PaystackOptions    `json:"paystack,omitempty"`
	Hubtel      *HubtelOptions      `json:"hubtel,omitempty"`
	Flutterwave *FlutterwaveOptions `json:"flutterwave,omitempty"`
	Moolre      *MoolreOptions      `json:"moolre,omitempty"`
	LibertePay  *LibertePayOptions  `json:"libertepay,omitempty"`
}

// PaymentResponse is the canonical result of an initiation or verification.
type PaymentResponse struct {
	Status PaymentStatus `json:"status"`

	// Reference is the caller-supplied (or provider-echoed) correlation
	// string.
	Reference string `json:"reference"`

	// AuthorizationURL is the checkout/redirect link, when the gateway
	// returns one.
	AuthorizationURL string `json:"authorizationUrl,omitempty"`

	// ExternalReference is the gateway's own transaction identifier,
	// distinct from Reference.
	ExternalReference string `json:"externalReference,omitempty"`

	// Raw is the untouched provider payload, kept for debugging and audit.
	// Callers must not parse it.
	Raw json.RawMessage `json:"raw,omitempty"`
}

// PaystackOptions are Paystack-only initiation fields.
type PaystackOptions struct {
	Channels          []PaystackChannel `json:"channels,omitempty" validate:"omitempty,dive,paystack_channel"`
	Subaccount        string            `json:"subaccount,omitempty"`
	SplitCode         string            `json:"splitCode,omitempty"`
	Bearer            string            `json:"bearer,omitempty" validate:"omitempty,oneof=subaccount account"`
	TransactionCharge float64           `json:"transactionCharge,omitempty" validate:"omitempty,gte=0"`
	Plan              string            `json:"plan,omitempty"`
	InvoiceLimit      int               `json:"invoiceLimit,omitempty" validate:"omitempty,gte=1"`
}

// HubtelOptions are Hubtel-only initiation fields. ReturnURL is required by
// the Hubtel adapter even though it is optional at the schema level; the
// adapter enforces that precondition itself.
type HubtelOptions struct {
	ReturnURL       string `json:"returnUrl,omitempty" validate:"omitempty,url"`
	MobileNumber    string `json:"mobileNumber,omitempty" validate:"omitempty,min=10,max=15"`
	CancellationURL string `json:"cancellationUrl,omitempty" validate:"omitempty,url"`
}

// FlutterwaveSubaccount identifies one split-payment subaccount.
type FlutterwaveSubaccount struct {
	ID string `json:"id" validate:"required,uuid"`
}

// FlutterwaveOptions are Flutterwave-only initiation fields.
type FlutterwaveOptions struct {
	CustomerName     string                  `json:"customerName,omitempty"`
	PageTitle        string                  `json:"pageTitle,omitempty"`
	LogoURL          string                  `json:"logoUrl,omitempty" validate:"omitempty,url"`
	SessionDuration  int                     `json:"sessionDuration,omitempty" validate:"omitempty,min=1,max=1440"`
	MaxRetryAttempts int                     `json:"maxRetryAttempts,omitempty" validate:"omitempty,min=1,max=10"`
	PaymentPlan      int                     `json:"paymentPlan,omitempty"`
	PaymentOptions   string                  `json:"paymentOptions,omitempty"`
	LinkExpiration   *time.Time              `json:"linkExpiration,omitempty"`
	MobileNumber     string                  `json:"mobileNumber,omitempty"`
	Subaccounts      []FlutterwaveSubaccount `json:"subaccounts,omitempty" validate:"omitempty,dive"`
}

// MoolreOptions are Moolre-only initiation fields. RedirectURL is required by
// the Moolre adapter; the adapter enforces that precondition itself.
type MoolreOptions struct {
	LinkReusable          bool   `json:"linkReusable,omitempty"`
	AccountNumberOverride string `json:"accountNumberOverride,omitempty"`
	RedirectURL           string `json:"redirectUrl,omitempty" validate:"omitempty,url"`
}

// LibertePayOptions are LibertePay-only initiation fields.
type LibertePayOptions struct {
	MobileNumber string `json:"mobileNumber,omitempty" validate:"omitempty,min=10,max=15"`
	PaymentSlug  string `json:"paymentSlug,omitempty"`
}

// Option configures an adapter at construction time.
type Option func(*adapterOptions)

type adapterOptions struct {
	logger *zap.SugaredLogger
}

// WithLogger attaches a logger to the adapter. Without it adapters stay
// silent.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *adapterOptions) { o.logger = logger }
}

func newAdapterOptions(opts []Option) adapterOptions {
	o := adapterOptions{logger: zap.NewNop().Sugar()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// rawBody copies the response body so the canonical response does not alias
// resty's internal buffer.
func rawBody(resp *resty.Response) json.RawMessage {
	return json.RawMessage(append([]byte(nil), resp.Body()...))
}
