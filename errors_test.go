package voltax

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyGatewayFailure_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid key"}`))
	}))
	defer srv.Close()

	resp, err := resty.New().SetBaseURL(srv.URL).R().Get("/")
	require.NoError(t, err)

	classified := classifyGatewayFailure("Paystack", resp, nil)

	var gwErr *GatewayError
	require.ErrorAs(t, classified, &gwErr)
	assert.Equal(t, "Paystack", gwErr.Provider)
	assert.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
	assert.Equal(t, "Invalid key", gwErr.Message)
	assert.JSONEq(t, `{"message":"Invalid key"}`, string(gwErr.Body))
}

func TestClassifyGatewayFailure_NoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp, err := resty.New().SetBaseURL(url).R().Get("/")
	require.Error(t, err)

	classified := classifyGatewayFailure("Paystack", resp, err)

	var netErr *NetworkError
	require.ErrorAs(t, classified, &netErr)
	assert.NotNil(t, netErr.Unwrap())
}

func TestClassifyGatewayFailure_UnclassifiedError(t *testing.T) {
	classified := classifyGatewayFailure("Moolre", nil, errors.New("boom"))

	var base *Error
	require.ErrorAs(t, classified, &base)
	assert.Equal(t, "boom", base.Message)

	var gwErr *GatewayError
	assert.False(t, errors.As(classified, &gwErr))
}

func TestClassifyGatewayFailure_NothingToClassify(t *testing.T) {
	classified := classifyGatewayFailure("Hubtel", nil, nil)

	var base *Error
	require.ErrorAs(t, classified, &base)
	assert.Equal(t, "Unknown error occurred", base.Message)
}

func TestGatewayMessage(t *testing.T) {
	assert.Equal(t, "Invalid key", gatewayMessage([]byte(`{"message":"Invalid key"}`)))
	assert.Equal(t, "denied", gatewayMessage([]byte(`{"msg":"denied"}`)))
	assert.Equal(t, "request rejected by gateway", gatewayMessage([]byte(`<html>`)))
}

func TestValidationError_Message(t *testing.T) {
	err := newValidationError("Validation Failed",
		FieldViolation{Field: "Email", Message: "Invalid email address"},
		FieldViolation{Field: "Amount", Message: "Amount must be positive"},
	)

	assert.Contains(t, err.Error(), "2 field violation(s)")
	assert.Contains(t, err.Error(), "Email")
}
