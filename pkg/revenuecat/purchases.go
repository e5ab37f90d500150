package revenuecat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// PurchaseParams describes a store receipt to record. AppUserID,
// FetchToken, and Platform are required; everything else is optional and
// omitted from the wire payload when unset.
type PurchaseParams struct {
	AppUserID  string
	FetchToken string
	Platform   Platform

	ProductID                   string
	Price                       *float64
	Currency                    string
	PaymentMode                 *PaymentMode
	IntroductoryPrice           *float64
	IsRestore                   bool
	PresentedOfferingIdentifier string
	Attributes                  map[string]SubscriberAttribute
}

type receiptPayload struct {
	AppUserID                   string                         `json:"app_user_id"`
	FetchToken                  string                         `json:"fetch_token"`
	ProductID                   string                         `json:"product_id,omitempty"`
	Price                       *float64                       `json:"price,omitempty"`
	Currency                    string                         `json:"currency,omitempty"`
	PaymentMode                 *PaymentMode                   `json:"payment_mode,omitempty"`
	IntroductoryPrice           *float64                       `json:"introductory_price,omitempty"`
	IsRestore                   string                         `json:"is_restore"`
	PresentedOfferingIdentifier string                         `json:"presented_offering_identifier,omitempty"`
	Attributes                  map[string]SubscriberAttribute `json:"attributes,omitempty"`
}

// CreatePurchase records a purchase from a store receipt and returns the
// updated subscriber. The receipts endpoint expects is_restore as the
// string literal "true"/"false", not a JSON boolean.
func (c *Client) CreatePurchase(ctx context.Context, params PurchaseParams) (*Subscriber, error) {
	payload := receiptPayload{
		AppUserID:                   params.AppUserID,
		FetchToken:                  params.FetchToken,
		ProductID:                   params.ProductID,
		Price:                       params.Price,
		Currency:                    params.Currency,
		PaymentMode:                 params.PaymentMode,
		IntroductoryPrice:           params.IntroductoryPrice,
		IsRestore:                   strconv.FormatBool(params.IsRestore),
		PresentedOfferingIdentifier: params.PresentedOfferingIdentifier,
		Attributes:                  params.Attributes,
	}

	var env subscriberEnvelope
	err := c.call(ctx, callOpts{
		op:       "create_purchase",
		method:   http.MethodPost,
		path:     "/receipts",
		payload:  payload,
		platform: params.Platform,
		tier:     tierPublic,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Subscriber, nil
}

// GrantPromotionalEntitlement grants an entitlement to a subscriber for the
// given duration, starting at startTime (sent as epoch milliseconds).
func (c *Client) GrantPromotionalEntitlement(ctx context.Context, appUserID, entitlementID string, duration PromotionDuration, startTime time.Time) (*Subscriber, error) {
	payload := struct {
		Duration    PromotionDuration `json:"duration"`
		StartTimeMs float64           `json:"start_time_ms"`
	}{Duration: duration, StartTimeMs: epochMilliseconds(startTime)}

	var env subscriberEnvelope
	err := c.call(ctx, callOpts{
		op:      "grant_promotional_entitlement",
		method:  http.MethodPost,
		path:    fmt.Sprintf("/subscribers/%s/entitlements/%s/promotional", url.PathEscape(appUserID), url.PathEscape(entitlementID)),
		payload: payload,
		tier:    tierSecret,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Subscriber, nil
}

// RevokePromotionalEntitlements revokes every promotional grant of an
// entitlement from a subscriber.
func (c *Client) RevokePromotionalEntitlements(ctx context.Context, appUserID, entitlementID string) (*Subscriber, error) {
	var env subscriberEnvelope
	err := c.call(ctx, callOpts{
		op:     "revoke_promotional_entitlements",
		method: http.MethodPost,
		path:   fmt.Sprintf("/subscribers/%s/entitlements/%s/revoke_promotionals", url.PathEscape(appUserID), url.PathEscape(entitlementID)),
		tier:   tierSecret,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Subscriber, nil
}

// RevokeGoogleSubscription immediately revokes a Play Store subscription.
func (c *Client) RevokeGoogleSubscription(ctx context.Context, appUserID, productID string) (*Subscriber, error) {
	return c.googleSubscriptionAction(ctx, "revoke_google_subscription", appUserID, productID, "revoke", nil)
}

// DeferGoogleSubscription moves a Play Store subscription's expiry to
// expiryTime (sent as epoch milliseconds).
func (c *Client) DeferGoogleSubscription(ctx context.Context, appUserID, productID string, expiryTime time.Time) (*Subscriber, error) {
	payload := struct {
		ExpiryTimeMs float64 `json:"expiry_time_ms"`
	}{ExpiryTimeMs: epochMilliseconds(expiryTime)}
	return c.googleSubscriptionAction(ctx, "defer_google_subscription", appUserID, productID, "defer", payload)
}

// RefundGoogleSubscription refunds the latest purchase of a Play Store
// subscription without revoking access for the already-paid period.
func (c *Client) RefundGoogleSubscription(ctx context.Context, appUserID, productID string) (*Subscriber, error) {
	return c.googleSubscriptionAction(ctx, "refund_google_subscription", appUserID, productID, "refund", nil)
}

func (c *Client) googleSubscriptionAction(ctx context.Context, op, appUserID, productID, action string, payload interface{}) (*Subscriber, error) {
	var env subscriberEnvelope
	err := c.call(ctx, callOpts{
		op:      op,
		method:  http.MethodPost,
		path:    fmt.Sprintf("/subscribers/%s/subscriptions/%s/%s", url.PathEscape(appUserID), url.PathEscape(productID), action),
		payload: payload,
		tier:    tierSecret,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Subscriber, nil
}
