package jasiapi

import (
	"context"
	"time"
)

// Period selects how CountEarthquakes buckets its counts.
type Period int

const (
	// PeriodAuto lets the upstream pick a unit from the search duration.
	PeriodAuto Period = iota
	// PeriodDay buckets by day; the upstream allows it for spans up to
	// about one month.
	PeriodDay
	// PeriodMonth buckets by month, for spans up to about three years.
	PeriodMonth
	// PeriodYear buckets by year.
	PeriodYear
)

var periodCodes = map[Period]string{
	PeriodAuto:  "C0",
	PeriodDay:   "C1",
	PeriodMonth: "C2",
	PeriodYear:  "C3",
}

// PeriodUnit names the bucket size the upstream actually used, which can
// differ from the requested [Period] (short spans aggregate by hour).
type PeriodUnit string

const (
	PeriodUnitHour  PeriodUnit = "hour"
	PeriodUnitDay   PeriodUnit = "day"
	PeriodUnitMonth PeriodUnit = "month"
	PeriodUnitYear  PeriodUnit = "year"
)

// IntensityCount tallies stations by observed intensity level.
type IntensityCount struct {
	One       int
	Two       int
	Three     int
	Four      int
	FiveLower int
	FiveUpper int
	SixLower  int
	SixUpper  int
	Seven     int
}

// PeriodCount is one aggregation bucket.
type PeriodCount struct {
	// Start of the bucket in JST.
	Start time.Time
	// Unit is the bucket size the upstream used.
	Unit PeriodUnit
	// Stations counts observing stations per intensity level.
	Stations IntensityCount
}

// CountQuery filters CountEarthquakes. The embedded [SearchQuery.Sort] is
// ignored; count rows always come back in period order.
type CountQuery struct {
	SearchQuery
	// Period selects the aggregation bucket size.
	Period Period
}

// CountEarthquakes aggregates station observations over the filtered events
// into per-period counts by intensity level. The trailing totals row the
// upstream appends comes back separately as the summary; it is nil when the
// upstream omits it.
func (c *Client) CountEarthquakes(ctx context.Context, q CountQuery) ([]PeriodCount, *IntensityCount, error) {
	if err := q.SearchQuery.validate(c.clock.Now()); err != nil {
		return nil, nil, err
	}
	compCode, ok := periodCodes[q.Period]
	if !ok {
		return nil, nil, &ValidationError{Field: "Period", Reason: "unknown aggregation period"}
	}

	form := q.encode(true, "S0", compCode)

	body, err := c.post(ctx, "count", form)
	if err != nil {
		return nil, nil, err
	}

	res, rejection, err := decodeEnvelope(body)
	if err != nil {
		c.parseFailed("count")
		return nil, nil, err
	}
	if rejection != "" {
		c.outcome("count", "rejected")
		return nil, nil, &RequestError{StatusCode: 200, Message: rejection}
	}

	counts, summary, err := parseCounts(res)
	if err != nil {
		c.parseFailed("count")
		return nil, nil, err
	}

	c.rows("count", len(counts))
	c.logger.Info("count search complete", "buckets", len(counts))
	return counts, summary, nil
}
