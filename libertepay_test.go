package voltax

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibertePay(t *testing.T, baseURL string) *LibertePayAdapter {
	t.Helper()
	adapter, err := NewLibertePayAdapter(LibertePayConfig{SecretKey: "lp_secret"})
	require.NoError(t, err)
	adapter.client.SetBaseURL(baseURL)
	return adapter
}

func TestNewLibertePayAdapter_RequiresSecretKey(t *testing.T) {
	_, err := NewLibertePayAdapter(LibertePayConfig{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestNewLibertePayAdapter_TestEnvSwitchesHost(t *testing.T) {
	prod, err := NewLibertePayAdapter(LibertePayConfig{SecretKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, libertePayBaseURL, prod.client.BaseURL)

	uat, err := NewLibertePayAdapter(LibertePayConfig{SecretKey: "k", TestEnv: true})
	require.NoError(t, err)
	assert.Equal(t, libertePayTestBaseURL, uat.client.BaseURL)
}

func TestLibertePayInitiatePayment_RequiresReference(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	adapter := newTestLibertePay(t, srv.URL)

	_, err := adapter.InitiatePayment(context.Background(), validRequest())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Reference is required for LibertePay payment", verr.Message)
	assert.Zero(t, calls)
}

func TestLibertePayInitiatePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions/initiate", r.URL.Path)
		assert.Equal(t, "Bearer lp_secret", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(100), body["amount"])
		assert.Equal(t, "test@example.com", body["emailid"])
		assert.Equal(t, "ref_lp", body["reference"])
		assert.Equal(t, "0244000000", body["phone_number"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Code": "00",
			"status": "success",
			"data": {
				"access_code": "ac_1",
				"payment_url": "https://pay.libertepay.com/ac_1",
				"reference": "lp_ref_900"
			}
		}`))
	}))
	defer srv.Close()

	adapter := newTestLibertePay(t, srv.URL)
	req := validRequest()
	req.Reference = "ref_lp"
	req.LibertePay = &LibertePayOptions{MobileNumber: "0244000000"}

	resp, err := adapter.InitiatePayment(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, "ref_lp", resp.Reference)
	assert.Equal(t, "https://pay.libertepay.com/ac_1", resp.AuthorizationURL)
	assert.Equal(t, "lp_ref_900", resp.ExternalReference)
}

func TestLibertePayVerifyTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments/status-check", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ref_lp", body["transaction_id"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Code": "00",
			"status": "success",
			"data": {"status_code": "failed", "transaction_id": "txn_55", "amount": "100"}
		}`))
	}))
	defer srv.Close()

	adapter := newTestLibertePay(t, srv.URL)

	resp, err := adapter.VerifyTransaction(context.Background(), "ref_lp")
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, resp.Status)
	assert.Equal(t, "ref_lp", resp.Reference)
	assert.Equal(t, "txn_55", resp.ExternalReference)
}

func TestLibertePayVerifyTransaction_EmptyReference(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	adapter := newTestLibertePay(t, srv.URL)

	_, err := adapter.VerifyTransaction(context.Background(), "")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, calls)
}

func TestMapLibertePayStatus(t *testing.T) {
	tests := []struct {
		provider string
		want     PaymentStatus
	}{
		{"success", StatusSuccess},
		{"failed", StatusFailed},
		{"reversed", StatusFailed},
		{"abandoned", StatusFailed},
		{"processing", StatusPending},
		{"", StatusPending},
	}

	for _, tc := range tests {
		t.Run(tc.provider, func(t *testing.T) {
			assert.Equal(t, tc.want, mapLibertePayStatus(tc.provider))
		})
	}
}
