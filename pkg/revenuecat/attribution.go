package revenuecat

import (
	"context"
	"net/http"
	"net/url"
)

// AttributionData carries the advertising identifiers reported alongside an
// attribution network. Unset fields are omitted from the payload.
type AttributionData struct {
	// IDFA is the Apple advertising identifier.
	IDFA string
	// GPSAdID is the Google Play Services advertising identifier.
	GPSAdID string
}

type attributionPayload struct {
	Network AttributionSource  `json:"network"`
	Data    attributionDataDTO `json:"data"`
}

type attributionDataDTO struct {
	IDFA    string `json:"rc_idfa,omitempty"`
	GPSAdID string `json:"rc_gps_adid,omitempty"`
}

// AddUserAttribution attaches install-attribution data from an ad network
// to a subscriber. No typed return.
func (c *Client) AddUserAttribution(ctx context.Context, appUserID string, network AttributionSource, data AttributionData) error {
	payload := attributionPayload{
		Network: network,
		Data: attributionDataDTO{
			IDFA:    data.IDFA,
			GPSAdID: data.GPSAdID,
		},
	}

	return c.call(ctx, callOpts{
		op:      "add_user_attribution",
		method:  http.MethodPost,
		path:    "/subscribers/" + url.PathEscape(appUserID) + "/attribution",
		payload: payload,
		tier:    tierPublic,
	}, nil)
}
