package revenuecat

import "encoding/json"

// Response records. All of these are value types constructed only by
// decoding a successful response body; nothing in this package mutates
// them after creation.

// Entitlement is a named right to access content, independent of which
// underlying product granted it. Timestamps are ISO-8601 strings as the
// remote sends them; an empty ExpiresDate means the entitlement does not
// expire.
type Entitlement struct {
	ExpiresDate       string `json:"expires_date"`
	PurchaseDate      string `json:"purchase_date"`
	ProductIdentifier string `json:"product_identifier"`
}

// Subscription is one auto-renewing purchase keyed by product identifier
// in the Subscriber record.
type Subscription struct {
	ExpiresDate             string        `json:"expires_date"`
	PurchaseDate            string        `json:"purchase_date"`
	OriginalPurchaseDate    string        `json:"original_purchase_date"`
	OwnershipType           OwnershipType `json:"ownership_type"`
	PeriodType              PeriodType    `json:"period_type"`
	Store                   Store         `json:"store"`
	IsSandbox               bool          `json:"is_sandbox"`
	UnsubscribeDetectedAt   string        `json:"unsubscribe_detected_at"`
	BillingIssuesDetectedAt string        `json:"billing_issues_detected_at"`
}

// NonSubscription is a one-time purchase record.
type NonSubscription struct {
	ID           string `json:"id"`
	PurchaseDate string `json:"purchase_date"`
	Store        Store  `json:"store"`
	IsSandbox    bool   `json:"is_sandbox"`
}

// SubscriberAttribute is a caller-defined key/value annotation on a
// subscriber. UpdatedAtMs is epoch milliseconds.
type SubscriberAttribute struct {
	Value       string `json:"value"`
	UpdatedAtMs int64  `json:"updated_at_ms"`
}

// Subscriber is the full remote view of one app user. Map keys are the
// identifiers the remote API keys each collection by (entitlement ids,
// product ids, attribute names); uniqueness comes from the API contract.
type Subscriber struct {
	OriginalAppUserID          string                         `json:"original_app_user_id"`
	OriginalApplicationVersion string                         `json:"original_application_version"`
	FirstSeen                  string                         `json:"first_seen"`
	LastSeen                   string                         `json:"last_seen"`
	ManagementURL              string                         `json:"management_url"`
	OriginalPurchaseDate       string                         `json:"original_purchase_date"`
	Entitlements               map[string]Entitlement         `json:"entitlements"`
	Subscriptions              map[string]Subscription        `json:"subscriptions"`
	NonSubscriptions           map[string]NonSubscription     `json:"non_subscriptions"`
	SubscriberAttributes       map[string]SubscriberAttribute `json:"subscriber_attributes"`

	// OtherPurchases is a deprecated alias of non_subscriptions in the
	// remote API; kept raw rather than typed.
	OtherPurchases map[string]json.RawMessage `json:"other_purchases"`
}

// Package maps an internal package identifier to a store product.
type Package struct {
	Identifier                string `json:"identifier"`
	PlatformProductIdentifier string `json:"platform_product_identifier"`
}

// Offering is a merchandising bundle of packages. Packages belong to the
// offering they were decoded from, in their original order.
type Offering struct {
	Identifier  string    `json:"identifier"`
	Description string    `json:"description"`
	Packages    []Package `json:"packages"`
}

// Offerings is the catalog for one subscriber: the currently selected
// offering plus the ordered set of all offerings.
type Offerings struct {
	CurrentOfferingID string     `json:"current_offering_id"`
	Offerings         []Offering `json:"offerings"`
}

// Most subscriber-returning endpoints nest the record under a "subscriber"
// key.
type subscriberEnvelope struct {
	Subscriber Subscriber `json:"subscriber"`
}
