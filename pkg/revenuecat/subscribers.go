package revenuecat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// GetSubscriberInfo fetches the full subscriber record for an app user,
// creating it server-side if it does not exist yet. Uses the secret key
// when one is configured, the public key otherwise.
func (c *Client) GetSubscriberInfo(ctx context.Context, appUserID string) (*Subscriber, error) {
	tier := tierPublic
	if c.secretKey != "" {
		tier = tierSecret
	}

	var env subscriberEnvelope
	err := c.call(ctx, callOpts{
		op:     "get_subscriber_info",
		method: http.MethodGet,
		path:   "/subscribers/" + url.PathEscape(appUserID),
		tier:   tier,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Subscriber, nil
}

// IsUserSubscribed reports whether the app user has at least one
// subscription whose expiry is strictly in the future at the moment of the
// call. A subscription without an expiry date counts as active. This is a
// point-in-time check against a fresh subscriber lookup; nothing is cached.
func (c *Client) IsUserSubscribed(ctx context.Context, appUserID string) (bool, error) {
	info, err := c.GetSubscriberInfo(ctx, appUserID)
	if err != nil {
		return false, err
	}

	now := time.Now()
	for productID, sub := range info.Subscriptions {
		if sub.ExpiresDate == "" {
			return true, nil
		}
		expires, err := time.Parse(time.RFC3339, sub.ExpiresDate)
		if err != nil {
			return false, &RemoteError{Err: fmt.Errorf("subscription %s: parse expires_date %q: %w", productID, sub.ExpiresDate, err)}
		}
		if expires.After(now) {
			return true, nil
		}
	}
	return false, nil
}

// UpdateSubscriberAttributes sets or updates attributes on a subscriber.
// Fire and forget: the remote API returns no typed body for this call.
func (c *Client) UpdateSubscriberAttributes(ctx context.Context, appUserID string, attrs map[string]SubscriberAttribute) error {
	payload := struct {
		Attributes map[string]SubscriberAttribute `json:"attributes"`
	}{Attributes: attrs}

	return c.call(ctx, callOpts{
		op:      "update_subscriber_attributes",
		method:  http.MethodPost,
		path:    "/subscribers/" + url.PathEscape(appUserID) + "/attributes",
		payload: payload,
		tier:    tierPublic,
	}, nil)
}

// DeleteSubscriber permanently deletes a subscriber and returns the app
// user ID the remote service confirmed.
func (c *Client) DeleteSubscriber(ctx context.Context, appUserID string) (string, error) {
	var result struct {
		AppUserID string `json:"app_user_id"`
	}
	err := c.call(ctx, callOpts{
		op:     "delete_subscriber",
		method: http.MethodDelete,
		path:   "/subscribers/" + url.PathEscape(appUserID),
		tier:   tierSecret,
	}, &result)
	if err != nil {
		return "", err
	}
	return result.AppUserID, nil
}
