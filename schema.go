package voltax

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxSafeAmount is the largest integer a float64 represents exactly (2^53-1).
// Amounts past it silently lose precision before they ever reach a gateway.
const maxSafeAmount = float64(1<<53 - 1)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return Currency(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("paystack_channel", func(fl validator.FieldLevel) bool {
		return PaystackChannel(fl.Field().String()).Valid()
	})
}

// IsValidAmount guards against the numeric edge cases struct tags cannot
// express: NaN, infinities, zero and negatives, and values past the largest
// exactly-representable integer. It runs on every initiation independently
// of the schema validation.
func IsValidAmount(amount float64) bool {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return false
	}
	return amount > 0 && amount <= maxSafeAmount
}

// validateRequest runs the shared base schema (plus whatever provider option
// structs are present) over the canonical request, then the numeric amount
// guard. Failures carry the full field-violation list, not just the first.
func validateRequest(req InitiatePaymentRequest) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return newValidationError("Validation Failed", translateViolations(verrs)...)
		}
		return &Error{Message: err.Error()}
	}
	if !IsValidAmount(req.Amount) {
		return newValidationError("Invalid amount")
	}
	return nil
}

// validatePaystackRequest: Paystack has no extra required fields beyond the
// base schema; the gateway generates a reference when none is supplied.
func validatePaystackRequest(req InitiatePaymentRequest) error {
	return validateRequest(req)
}

// validateHubtelRequest enforces Hubtel's stricter preconditions after the
// shared schema: the checkout API cannot be called without a caller
// reference, a callback URL and a return URL.
func validateHubtelRequest(req InitiatePaymentRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if req.Reference == "" {
		return newValidationError("Reference is required for Hubtel payment")
	}
	if req.CallbackURL == "" {
		return newValidationError("Callback URL is required for Hubtel payment")
	}
	if req.Hubtel == nil || req.Hubtel.ReturnURL == "" {
		return newValidationError("Return URL is required for Hubtel payment")
	}
	return nil
}

// validateFlutterwaveRequest: Flutterwave requires a non-empty caller
// reference (tx_ref) up front.
func validateFlutterwaveRequest(req InitiatePaymentRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if req.Reference == "" {
		return newValidationError("Payment reference is required for Flutterwave payments")
	}
	return nil
}

// validateMoolreRequest enforces Moolre's stricter preconditions: reference,
// callback URL and redirect URL are all mandatory for the payment-link API.
func validateMoolreRequest(req InitiatePaymentRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if req.Reference == "" {
		return newValidationError("Reference is required for Moolre")
	}
	if req.CallbackURL == "" {
		return newValidationError("Callback URL is required for Moolre")
	}
	if req.Moolre == nil || req.Moolre.RedirectURL == "" {
		return newValidationError("Redirect URL is required for Moolre")
	}
	return nil
}

// validateLibertePayRequest: reference is required at initiation; the
// adapter sends it verbatim on the wire.
func validateLibertePayRequest(req InitiatePaymentRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if req.Reference == "" {
		return newValidationError("Reference is required for LibertePay payment")
	}
	return nil
}

func translateViolations(errs validator.ValidationErrors) []FieldViolation {
	out := make([]FieldViolation, 0, len(errs))
	for _, fe := range errs {
		out = append(out, FieldViolation{Field: fieldPath(fe), Message: violationMessage(fe)})
	}
	return out
}

// fieldPath trims the leading struct name from the namespace:
// "InitiatePaymentRequest.Paystack.Bearer" -> "Paystack.Bearer".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email address"
	case "currency":
		return "Invalid or missing currency. Use GHS, NGN, USD, KES or ZAR"
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "gt":
		return "Amount must be positive"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "uuid":
		return "Subaccount ID must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "paystack_channel":
		return "Unsupported Paystack channel"
	default:
		return fmt.Sprintf("%s failed validation on %s", fe.Field(), fe.Tag())
	}
}
