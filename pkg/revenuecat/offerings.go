package revenuecat

import (
	"context"
	"net/http"
	"net/url"
)

// GetOfferings fetches the offerings catalog for an app user. The remote
// service filters packages by platform, so the platform header is required
// here rather than optional.
func (c *Client) GetOfferings(ctx context.Context, appUserID string, platform Platform) (*Offerings, error) {
	if platform == "" {
		return nil, &ConfigError{Reason: "a platform is required to fetch offerings"}
	}

	var offerings Offerings
	err := c.call(ctx, callOpts{
		op:       "get_offerings",
		method:   http.MethodGet,
		path:     "/subscribers/" + url.PathEscape(appUserID) + "/offerings",
		platform: platform,
		tier:     tierPublic,
	}, &offerings)
	if err != nil {
		return nil, err
	}
	return &offerings, nil
}

// OverrideCurrentOffering pins a specific offering as the subscriber's
// current offering, overriding the project-level selection.
func (c *Client) OverrideCurrentOffering(ctx context.Context, appUserID, offeringUUID string) (*Subscriber, error) {
	var env subscriberEnvelope
	err := c.call(ctx, callOpts{
		op:     "override_current_offering",
		method: http.MethodPost,
		path:   "/subscribers/" + url.PathEscape(appUserID) + "/offerings/" + url.PathEscape(offeringUUID) + "/override",
		tier:   tierSecret,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Subscriber, nil
}

// DeleteCurrentOfferingOverride removes a previously set offering override,
// returning the subscriber to the project-level current offering.
func (c *Client) DeleteCurrentOfferingOverride(ctx context.Context, appUserID string) (*Subscriber, error) {
	var env subscriberEnvelope
	err := c.call(ctx, callOpts{
		op:     "delete_current_offering_override",
		method: http.MethodDelete,
		path:   "/subscribers/" + url.PathEscape(appUserID) + "/offerings/override",
		tier:   tierSecret,
	}, &env)
	if err != nil {
		return nil, err
	}
	return &env.Subscriber, nil
}
