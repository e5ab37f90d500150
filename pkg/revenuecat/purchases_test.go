package revenuecat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emptySubscriberEnvelope = `{"subscriber":{"original_app_user_id":"u1","entitlements":{},"subscriptions":{},"non_subscriptions":{}}}`

func TestCreatePurchaseWireFormat(t *testing.T) {
	t.Parallel()

	var gotBody map[string]interface{}
	var gotPlatform, gotPath string
	client, server := newTestClient(t, ClientConfig{PublicKey: "pk"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPlatform = r.Header.Get("X-Platform")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, emptySubscriberEnvelope)
	}))
	defer server.Close()

	sub, err := client.CreatePurchase(context.Background(), PurchaseParams{
		AppUserID:  "u1",
		FetchToken: "receipt-data",
		Platform:   PlatformIOS,
	})
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "u1", sub.OriginalAppUserID)

	assert.Equal(t, "/receipts", gotPath)
	assert.Equal(t, "ios", gotPlatform)
	assert.Equal(t, "u1", gotBody["app_user_id"])
	assert.Equal(t, "receipt-data", gotBody["fetch_token"])

	// Booleans ride the wire as string literals on this endpoint.
	assert.Equal(t, "false", gotBody["is_restore"])

	// Unset optionals are omitted, not sent as null.
	for _, key := range []string{"product_id", "price", "currency", "payment_mode", "introductory_price", "presented_offering_identifier", "attributes"} {
		assert.NotContains(t, gotBody, key)
	}
}

func TestCreatePurchaseSerializesOptionalFields(t *testing.T) {
	t.Parallel()

	var gotBody map[string]interface{}
	client, server := newTestClient(t, ClientConfig{PublicKey: "pk"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, emptySubscriberEnvelope)
	}))
	defer server.Close()

	price := 9.99
	introPrice := 0.99
	mode := PaymentFreeTrial
	_, err := client.CreatePurchase(context.Background(), PurchaseParams{
		AppUserID:                   "u1",
		FetchToken:                  "receipt-data",
		Platform:                    PlatformAndroid,
		ProductID:                   "com.example.premium.monthly",
		Price:                       &price,
		Currency:                    "USD",
		PaymentMode:                 &mode,
		IntroductoryPrice:           &introPrice,
		IsRestore:                   true,
		PresentedOfferingIdentifier: "default",
		Attributes: map[string]SubscriberAttribute{
			"$email": {Value: "user@example.com", UpdatedAtMs: 1685622600000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "com.example.premium.monthly", gotBody["product_id"])
	assert.Equal(t, 9.99, gotBody["price"])
	assert.Equal(t, "USD", gotBody["currency"])
	assert.Equal(t, "2", gotBody["payment_mode"])
	assert.Equal(t, 0.99, gotBody["introductory_price"])
	assert.Equal(t, "true", gotBody["is_restore"])
	assert.Equal(t, "default", gotBody["presented_offering_identifier"])

	attrs, ok := gotBody["attributes"].(map[string]interface{})
	require.True(t, ok, "attributes should be an object")
	require.Contains(t, attrs, "$email")
}

func TestGrantPromotionalEntitlementPayload(t *testing.T) {
	t.Parallel()

	var gotBody map[string]interface{}
	var gotPath string
	client, server := newTestClient(t, ClientConfig{SecretKey: "sk"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, emptySubscriberEnvelope)
	}))
	defer server.Close()

	start := time.UnixMilli(1693401234567)
	sub, err := client.GrantPromotionalEntitlement(context.Background(), "user/1", "premium", PromotionThreeMonth, start)
	require.NoError(t, err)
	require.NotNil(t, sub)

	assert.Equal(t, "/subscribers/"+url.PathEscape("user/1")+"/entitlements/premium/promotional", gotPath)
	assert.Equal(t, "three_month", gotBody["duration"])
	assert.Equal(t, float64(1693401234567), gotBody["start_time_ms"])
}

func TestRevokePromotionalEntitlements(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod string
	client, server := newTestClient(t, ClientConfig{SecretKey: "sk"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		fmt.Fprint(w, emptySubscriberEnvelope)
	}))
	defer server.Close()

	_, err := client.RevokePromotionalEntitlements(context.Background(), "u1", "premium")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/subscribers/u1/entitlements/premium/revoke_promotionals", gotPath)
}

func TestGoogleSubscriptionActions(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod string
	var gotBody []byte
	client, server := newTestClient(t, ClientConfig{SecretKey: "sk"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		var err error
		gotBody, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		fmt.Fprint(w, emptySubscriberEnvelope)
	}))
	defer server.Close()

	ctx := context.Background()

	t.Run("revoke", func(t *testing.T) {
		_, err := client.RevokeGoogleSubscription(ctx, "u1", "com.example.premium")
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "/subscribers/u1/subscriptions/com.example.premium/revoke", gotPath)
		assert.Empty(t, gotBody, "revoke sends no payload")
	})

	t.Run("defer", func(t *testing.T) {
		expiry := time.UnixMilli(1704067200000)
		_, err := client.DeferGoogleSubscription(ctx, "u1", "com.example.premium", expiry)
		require.NoError(t, err)
		assert.Equal(t, "/subscribers/u1/subscriptions/com.example.premium/defer", gotPath)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(gotBody, &body))
		assert.Equal(t, float64(1704067200000), body["expiry_time_ms"])
	})

	t.Run("refund", func(t *testing.T) {
		_, err := client.RefundGoogleSubscription(ctx, "u1", "com.example.premium")
		require.NoError(t, err)
		assert.Equal(t, "/subscribers/u1/subscriptions/com.example.premium/refund", gotPath)
		assert.Empty(t, gotBody, "refund sends no payload")
	})
}
