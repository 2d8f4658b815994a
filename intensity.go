package jasiapi

import (
	"context"
	"errors"
	"net/url"
)

// Intensities fetches the per-station readings for one earthquake, keyed by
// the ID that [Client.SearchEarthquakes] returns. The readings come back in
// upstream order (strongest first) together with the event they belong to.
// An ID with no upstream record yields [ErrNotFound].
func (c *Client) Intensities(ctx context.Context, id string) ([]StationIntensity, Earthquake, error) {
	if err := validateEventID(id); err != nil {
		return nil, Earthquake{}, err
	}

	form := url.Values{}
	form.Set("mode", "event")
	form.Set("id", id)

	body, err := c.post(ctx, "intensity", form)
	if err != nil {
		return nil, Earthquake{}, err
	}

	res, rejection, err := decodeEnvelope(body)
	if err != nil {
		c.parseFailed("intensity")
		return nil, Earthquake{}, err
	}
	// In event mode a rejection can only mean the ID resolved to nothing.
	if rejection != "" {
		c.outcome("intensity", "not_found")
		return nil, Earthquake{}, ErrNotFound
	}

	readings, eq, err := parseEventDetail(res)
	if errors.Is(err, ErrNotFound) {
		c.outcome("intensity", "not_found")
		return nil, Earthquake{}, err
	}
	if err != nil {
		c.parseFailed("intensity")
		return nil, Earthquake{}, err
	}

	c.rows("intensity", len(readings))
	c.logger.Info("intensity lookup complete", "id", id, "stations", len(readings))
	return readings, eq, nil
}

func validateEventID(id string) error {
	if len(id) != eventIDLen {
		return &ValidationError{Field: "id", Reason: "must be a 14-digit event timestamp"}
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return &ValidationError{Field: "id", Reason: "must be a 14-digit event timestamp"}
		}
	}
	return nil
}
