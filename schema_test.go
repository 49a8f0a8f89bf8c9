package voltax

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() InitiatePaymentRequest {
	return InitiatePaymentRequest{
		Amount:   100,
		Email:    "test@example.com",
		Currency: GHS,
	}
}

func TestIsValidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   bool
	}{
		{"nan", math.NaN(), false},
		{"positive infinity", math.Inf(1), false},
		{"negative infinity", math.Inf(-1), false},
		{"zero", 0, false},
		{"negative", -5, false},
		{"beyond safe ceiling", float64(1 << 53), false},
		{"at safe ceiling", float64(1<<53 - 1), true},
		{"small positive", 0.01, true},
		{"typical", 100.5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidAmount(tc.amount))
		})
	}
}

func TestValidateRequest_CollectsAllViolations(t *testing.T) {
	req := InitiatePaymentRequest{
		Amount:   -1,
		Email:    "not-an-email",
		Currency: "EUR",
	}

	err := validateRequest(req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Validation Failed", verr.Message)
	assert.Len(t, verr.Violations, 3)

	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "Amount")
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Currency")
}

func TestValidateRequest_CurrencyMessageNamesEnum(t *testing.T) {
	req := validRequest()
	req.Currency = ""

	err := validateRequest(req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	assert.Contains(t, verr.Violations[0].Message, "GHS, NGN, USD, KES or ZAR")
}

func TestValidateRequest_InvalidCallbackURL(t *testing.T) {
	req := validRequest()
	req.CallbackURL = "not a url"

	err := validateRequest(req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, "CallbackURL", verr.Violations[0].Field)
	assert.Contains(t, verr.Violations[0].Message, "valid URL")
}

func TestValidateRequest_DescriptionTooLong(t *testing.T) {
	req := validRequest()
	req.Description = strings.Repeat("x", 256)

	err := validateRequest(req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, "Description", verr.Violations[0].Field)
}

func TestValidateRequest_AmountGuardCatchesInfinity(t *testing.T) {
	// +Inf slips past the schema's gt=0 check; the numeric guard must stop it.
	req := validRequest()
	req.Amount = math.Inf(1)

	err := validateRequest(req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid amount", verr.Message)
	assert.Empty(t, verr.Violations)
}

func TestValidateRequest_ProviderOptionRules(t *testing.T) {
	t.Run("paystack bearer outside enum", func(t *testing.T) {
		req := validRequest()
		req.Paystack = &PaystackOptions{Bearer: "merchant"}

		err := validateRequest(req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, "Paystack.Bearer", verr.Violations[0].Field)
	})

	t.Run("paystack unknown channel", func(t *testing.T) {
		req := validRequest()
		req.Paystack = &PaystackOptions{Channels: []PaystackChannel{"crypto"}}

		err := validateRequest(req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, "Unsupported Paystack channel", verr.Violations[0].Message)
	})

	t.Run("hubtel mobile number too short", func(t *testing.T) {
		req := validRequest()
		req.Hubtel = &HubtelOptions{ReturnURL: "https://example.com/return", MobileNumber: "12345"}

		err := validateRequest(req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, "Hubtel.MobileNumber", verr.Violations[0].Field)
	})

	t.Run("flutterwave session duration out of range", func(t *testing.T) {
		req := validRequest()
		req.Flutterwave = &FlutterwaveOptions{SessionDuration: 2000}

		err := validateRequest(req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, "Flutterwave.SessionDuration", verr.Violations[0].Field)
	})

	t.Run("flutterwave subaccount id must be uuid", func(t *testing.T) {
		req := validRequest()
		req.Flutterwave = &FlutterwaveOptions{
			Subaccounts: []FlutterwaveSubaccount{{ID: "not-a-uuid"}},
		}

		err := validateRequest(req)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, "Subaccount ID must be a valid UUID", verr.Violations[0].Message)
	})

	t.Run("valid options pass", func(t *testing.T) {
		req := validRequest()
		req.Paystack = &PaystackOptions{
			Channels:     []PaystackChannel{ChannelCard, ChannelMobileMoney},
			Bearer:       "account",
			InvoiceLimit: 3,
		}

		assert.NoError(t, validateRequest(req))
	})
}
