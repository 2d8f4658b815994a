package jasiapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// SearchQuery is the full set of filters the search form understands. All
// conditions combine as AND; all numeric ranges are inclusive. Only Start
// and End are required.
type SearchQuery struct {
	// Start and End bound the origin time, inclusive. The upstream accepts
	// 1919-01-01 through two days before the current JST date.
	Start time.Time
	End   time.Time

	// Magnitude restricts the JMA magnitude. Nil means no restriction
	// (0.0 through 9.9).
	Magnitude *Range
	// Depth restricts the hypocenter depth in km. Nil means no restriction
	// (0 through 999).
	Depth *Range

	// MinIntensity is the smallest acceptable maximum intensity of the
	// event. Zero means [Intensity1]. Unsubdivided 5 and 6 are not valid
	// thresholds.
	MinIntensity Intensity

	// Sort selects the result ordering, applied by the upstream.
	Sort Sort

	// StationPrefectures, StationCities, and Stations restrict results to
	// events observed in any of the listed places, by code. The upstream
	// honors only the most specific non-empty list: stations over cities
	// over prefectures. [Resolver] translates names to codes.
	StationPrefectures []int
	StationCities      []int
	Stations           []int
	// StationIntensity is the smallest intensity that must have been
	// observed at one of the listed places. Zero means [Intensity1].
	StationIntensity Intensity

	// EpicenterRegions restricts by JMA region name of the epicenter.
	EpicenterRegions []string
	// EpicenterArea restricts the epicenter to a convex polygon given as
	// at least three vertices.
	EpicenterArea []Coordinate
}

// SearchEarthquakes queries the database and returns matching events in the
// requested order. No matches yields an empty slice, not an error. At most
// the first 1,000 events come back; the upstream truncates silently.
func (c *Client) SearchEarthquakes(ctx context.Context, q SearchQuery) ([]Earthquake, error) {
	if err := q.validate(c.clock.Now()); err != nil {
		return nil, err
	}

	sortCode := sortCodes[q.Sort]
	form := q.encode(false, sortCode, "C0")

	body, err := c.post(ctx, "search", form)
	if err != nil {
		return nil, err
	}

	res, rejection, err := decodeEnvelope(body)
	if err != nil {
		c.parseFailed("search")
		return nil, err
	}
	if rejection != "" {
		c.outcome("search", "rejected")
		return nil, &RequestError{StatusCode: 200, Message: rejection}
	}

	quakes, err := parseEarthquakes(res)
	if err != nil {
		c.parseFailed("search")
		return nil, err
	}

	c.rows("search", len(quakes))
	c.logger.Info("earthquake search complete", "matches", len(quakes))
	return quakes, nil
}

func (q SearchQuery) validate(now time.Time) error {
	if q.Start.IsZero() {
		return &ValidationError{Field: "Start", Reason: "required"}
	}
	if q.End.IsZero() {
		return &ValidationError{Field: "End", Reason: "required"}
	}
	if q.End.Before(q.Start) {
		return &ValidationError{Field: "End", Reason: "before Start"}
	}
	if q.Start.Before(earliestSearchable) {
		return &ValidationError{Field: "Start", Reason: "database begins 1919-01-01"}
	}
	if q.End.After(latestSearchable(now)) {
		return &ValidationError{Field: "End", Reason: "no later than two days before today"}
	}

	if q.Magnitude != nil && q.Magnitude.Low > q.Magnitude.High {
		return &ValidationError{Field: "Magnitude", Reason: "low bound exceeds high bound"}
	}
	if q.Depth != nil && q.Depth.Low > q.Depth.High {
		return &ValidationError{Field: "Depth", Reason: "low bound exceeds high bound"}
	}

	if err := validateThreshold("MinIntensity", q.MinIntensity); err != nil {
		return err
	}
	if err := validateThreshold("StationIntensity", q.StationIntensity); err != nil {
		return err
	}

	if _, ok := sortCodes[q.Sort]; !ok {
		return &ValidationError{Field: "Sort", Reason: "unknown sort order"}
	}

	for _, code := range q.StationPrefectures {
		if _, ok := prefectures[code]; !ok {
			return &ValidationError{Field: "StationPrefectures", Reason: fmt.Sprintf("unknown prefecture code %d", code)}
		}
	}

	if n := len(q.EpicenterArea); n > 0 && n < 3 {
		return &ValidationError{Field: "EpicenterArea", Reason: "polygon needs at least 3 vertices"}
	}

	return nil
}

func validateThreshold(field string, level Intensity) error {
	if level == 0 {
		return nil
	}
	if !level.Valid() {
		return &ValidationError{Field: field, Reason: "not an intensity level"}
	}
	if _, ok := level.queryCode(); !ok {
		return &ValidationError{Field: field, Reason: "unsubdivided 5 and 6 are not searchable thresholds"}
	}
	return nil
}

// latestSearchable is the end of the newest searchable day: two days before
// the current JST date.
func latestSearchable(now time.Time) time.Time {
	now = now.In(JST)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, JST)
	return today.AddDate(0, 0, -1).Add(-time.Nanosecond)
}

// encode lays the filters out as the search form expects. It assumes the
// query already validated.
func (q SearchQuery) encode(seisCount bool, sortCode, compCode string) url.Values {
	observed := len(q.StationPrefectures) > 0 || len(q.StationCities) > 0 ||
		len(q.Stations) > 0 || q.StationIntensity != 0
	additional := observed || len(q.EpicenterRegions) > 0 || len(q.EpicenterArea) > 0

	mag := Range{Low: 0.0, High: 9.9}
	if q.Magnitude != nil {
		mag = *q.Magnitude
	}
	dep := Range{Low: 0, High: 999}
	if q.Depth != nil {
		dep = *q.Depth
	}

	minInt := orDefault(q.MinIntensity)
	obsInt := orDefault(q.StationIntensity)

	form := url.Values{}
	form.Set("mode", "search")
	addDateTime(form, "dateTimeF[]", q.Start)
	addDateTime(form, "dateTimeT[]", q.End)
	addRange(form, "mag[]", mag)
	addRange(form, "dep[]", dep)
	form.Set("maxInt", mustQueryCode(minInt))
	form.Set("Sort", sortCode)
	form.Set("Comp", compCode)
	form.Set("additionalC", strconv.FormatBool(additional))
	form.Set("observed", strconv.FormatBool(observed))
	addCodes(form, "pref[]", q.StationPrefectures)
	addCodes(form, "city[]", q.StationCities)
	addCodes(form, "station[]", q.Stations)
	form.Set("obsInt", mustQueryCode(obsInt))
	if len(q.EpicenterRegions) == 0 {
		form.Add("epi[]", "99")
	}
	for _, region := range q.EpicenterRegions {
		form.Add("epi[]", region)
	}
	form.Set("seisCount", strconv.FormatBool(seisCount))

	for i, v := range q.EpicenterArea {
		key := fmt.Sprintf("boundsAr[%d][]", i)
		form.Add(key, formatFloat(v.Lat))
		form.Add(key, formatFloat(v.Lon))
	}

	return form
}

func addDateTime(form url.Values, key string, t time.Time) {
	t = t.In(JST)
	form.Add(key, t.Format("2006-01-02"))
	form.Add(key, t.Format("15:04"))
}

func addRange(form url.Values, key string, r Range) {
	form.Add(key, formatFloat(r.Low))
	form.Add(key, formatFloat(r.High))
}

// addCodes sends the upstream's "unset" marker 99 for empty lists.
func addCodes(form url.Values, key string, codes []int) {
	if len(codes) == 0 {
		form.Add(key, "99")
		return
	}
	for _, code := range codes {
		form.Add(key, strconv.Itoa(code))
	}
}

func orDefault(level Intensity) Intensity {
	if level == 0 {
		return Intensity1
	}
	return level
}

func mustQueryCode(level Intensity) string {
	code, ok := level.queryCode()
	if !ok {
		// validate rejects unsubdivided thresholds before encoding runs.
		panic("jasiapi: unencodable intensity threshold " + level.String())
	}
	return code
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
