package revenuecat

import (
	"encoding/json"
	"fmt"
)

// The remote API exposes a handful of closed tag sets. Each decodes by exact
// match against its wire values; an unrecognized tag is a decode error, never
// a silent default, because a defaulted store or period type would
// misrepresent subscription state to the caller.

// Platform identifies the client platform a purchase or offering request
// applies to. Sent as the X-Platform routing header.
type Platform string

const (
	PlatformIOS         Platform = "ios"
	PlatformAndroid     Platform = "android"
	PlatformMacOS       Platform = "macos"
	PlatformUIKitForMac Platform = "uikitformac"
)

// ParsePlatform validates a wire value against the known platform set.
func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(s); p {
	case PlatformIOS, PlatformAndroid, PlatformMacOS, PlatformUIKitForMac:
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

func (p *Platform) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid platform value %s: %w", string(data), err)
	}
	parsed, err := ParsePlatform(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Store identifies which storefront a purchase was made through.
type Store string

const (
	StoreAppStore    Store = "app_store"
	StoreMacAppStore Store = "mac_app_store"
	StorePlayStore   Store = "play_store"
	StoreStripe      Store = "stripe"
	StorePromotional Store = "promotional"
)

// ParseStore validates a wire value against the known store set.
func ParseStore(s string) (Store, error) {
	switch v := Store(s); v {
	case StoreAppStore, StoreMacAppStore, StorePlayStore, StoreStripe, StorePromotional:
		return v, nil
	}
	return "", fmt.Errorf("unknown store %q", s)
}

func (s *Store) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid store value %s: %w", string(data), err)
	}
	parsed, err := ParseStore(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// PeriodType distinguishes normal billing periods from trial and intro
// pricing phases.
type PeriodType string

const (
	PeriodNormal PeriodType = "normal"
	PeriodTrial  PeriodType = "trial"
	PeriodIntro  PeriodType = "intro"
)

// ParsePeriodType validates a wire value against the known period set.
func ParsePeriodType(s string) (PeriodType, error) {
	switch v := PeriodType(s); v {
	case PeriodNormal, PeriodTrial, PeriodIntro:
		return v, nil
	}
	return "", fmt.Errorf("unknown period type %q", s)
}

func (p *PeriodType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid period type value %s: %w", string(data), err)
	}
	parsed, err := ParsePeriodType(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// OwnershipType records whether the subscriber purchased the subscription
// directly or receives it through family sharing.
type OwnershipType string

const (
	OwnershipPurchased    OwnershipType = "PURCHASED"
	OwnershipFamilyShared OwnershipType = "FAMILY_SHARED"
)

// ParseOwnershipType validates a wire value against the known ownership set.
func ParseOwnershipType(s string) (OwnershipType, error) {
	switch v := OwnershipType(s); v {
	case OwnershipPurchased, OwnershipFamilyShared:
		return v, nil
	}
	return "", fmt.Errorf("unknown ownership type %q", s)
}

func (o *OwnershipType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid ownership type value %s: %w", string(data), err)
	}
	parsed, err := ParseOwnershipType(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// PromotionDuration is the length of a promotional entitlement grant.
type PromotionDuration string

const (
	PromotionDaily      PromotionDuration = "daily"
	PromotionWeekly     PromotionDuration = "weekly"
	PromotionMonthly    PromotionDuration = "monthly"
	PromotionTwoMonth   PromotionDuration = "two_month"
	PromotionThreeMonth PromotionDuration = "three_month"
	PromotionSixMonth   PromotionDuration = "six_month"
	PromotionYearly     PromotionDuration = "yearly"
	PromotionLifetime   PromotionDuration = "lifetime"
)

// ParsePromotionDuration validates a wire value against the known duration set.
func ParsePromotionDuration(s string) (PromotionDuration, error) {
	switch v := PromotionDuration(s); v {
	case PromotionDaily, PromotionWeekly, PromotionMonthly, PromotionTwoMonth,
		PromotionThreeMonth, PromotionSixMonth, PromotionYearly, PromotionLifetime:
		return v, nil
	}
	return "", fmt.Errorf("unknown promotion duration %q", s)
}

func (p *PromotionDuration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid promotion duration value %s: %w", string(data), err)
	}
	parsed, err := ParsePromotionDuration(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PaymentMode describes how an introductory price is charged. The remote
// API encodes these as string digits.
type PaymentMode string

const (
	PaymentPayAsYouGo PaymentMode = "0"
	PaymentPayUpFront PaymentMode = "1"
	PaymentFreeTrial  PaymentMode = "2"
)

// ParsePaymentMode validates a wire value against the known mode set.
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch v := PaymentMode(s); v {
	case PaymentPayAsYouGo, PaymentPayUpFront, PaymentFreeTrial:
		return v, nil
	}
	return "", fmt.Errorf("unknown payment mode %q", s)
}

func (p *PaymentMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid payment mode value %s: %w", string(data), err)
	}
	parsed, err := ParsePaymentMode(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// AttributionSource identifies the ad network an install is attributed to.
// The remote API encodes these as integers.
type AttributionSource int

const (
	AttributionAppleSearchAds AttributionSource = iota
	AttributionAdjust
	AttributionAppsFlyer
	AttributionBranch
	AttributionTenjin
	AttributionFacebook
)

// ParseAttributionSource validates a wire value against the known network set.
func ParseAttributionSource(n int) (AttributionSource, error) {
	if n < int(AttributionAppleSearchAds) || n > int(AttributionFacebook) {
		return 0, fmt.Errorf("unknown attribution source %d", n)
	}
	return AttributionSource(n), nil
}

func (a *AttributionSource) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid attribution source value %s: %w", string(data), err)
	}
	parsed, err := ParseAttributionSource(n)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
