package jasiapi

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Wire types for the api.php JSON envelope. All row fields arrive as
// strings; coercion into typed values happens in the fromRow converters.

type envelope struct {
	Res json.RawMessage `json:"res"`
}

type eventRow struct {
	ID           string `json:"id"`
	OriginTime   string `json:"ot"`   // "2011/03/11 14:46:18.1", JST
	Name         string `json:"name"` // hypocenter region name
	Lat          string `json:"lat"`
	Lon          string `json:"lon"`
	Depth        string `json:"dep"` // "24 km"
	Magnitude    string `json:"mag"`
	MaxIntensity string `json:"maxI"` // "震度７" style label
}

type stationRow struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Lat       string `json:"lat"`
	Lon       string `json:"lon"`
	Intensity string `json:"int"`
}

type countRow struct {
	Label string `json:"lb"` // period label, or "合計" for the summary
	S1    string `json:"S1"`
	S2    string `json:"S2"`
	S3    string `json:"S3"`
	S4    string `json:"S4"`
	SA    string `json:"SA"` // 5 lower
	SB    string `json:"SB"` // 5 upper
	SC    string `json:"SC"` // 6 lower
	SD    string `json:"SD"` // 6 upper
	S7    string `json:"S7"`
}

type eventDetail struct {
	Hypocenters []eventRow   `json:"hyp"`
	Intensities []stationRow `json:"int"`
}

const originTimeLayout = "2006/01/02 15:04:05"

// decodeEnvelope unwraps {"res": ...} and reports an upstream rejection
// message, which arrives as a bare string in place of the result.
func decodeEnvelope(body []byte) (json.RawMessage, string, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, "", &ParseError{Field: "response", Value: truncate(body), Err: err}
	}
	if len(env.Res) == 0 {
		return nil, "", &ParseError{Field: "response", Value: truncate(body)}
	}
	var msg string
	if err := json.Unmarshal(env.Res, &msg); err == nil {
		return nil, msg, nil
	}
	return env.Res, "", nil
}

func parseEarthquakes(res json.RawMessage) ([]Earthquake, error) {
	var rows []eventRow
	if err := json.Unmarshal(res, &rows); err != nil {
		return nil, &ParseError{Field: "earthquake rows", Value: truncate(res), Err: err}
	}
	quakes := make([]Earthquake, 0, len(rows))
	for _, row := range rows {
		eq, err := row.toEarthquake()
		if err != nil {
			return nil, err
		}
		quakes = append(quakes, eq)
	}
	return quakes, nil
}

func parseEventDetail(res json.RawMessage) ([]StationIntensity, Earthquake, error) {
	var detail eventDetail
	if err := json.Unmarshal(res, &detail); err != nil {
		return nil, Earthquake{}, &ParseError{Field: "event detail", Value: truncate(res), Err: err}
	}
	if len(detail.Hypocenters) == 0 {
		return nil, Earthquake{}, ErrNotFound
	}
	if len(detail.Hypocenters) > 1 {
		return nil, Earthquake{}, &ParseError{
			Field: "event detail",
			Value: strconv.Itoa(len(detail.Hypocenters)) + " hypocenters",
		}
	}
	eq, err := detail.Hypocenters[0].toEarthquake()
	if err != nil {
		return nil, Earthquake{}, err
	}
	readings := make([]StationIntensity, 0, len(detail.Intensities))
	for _, row := range detail.Intensities {
		si, err := row.toStationIntensity()
		if err != nil {
			return nil, Earthquake{}, err
		}
		readings = append(readings, si)
	}
	return readings, eq, nil
}

func parseCounts(res json.RawMessage) ([]PeriodCount, *IntensityCount, error) {
	var rows []countRow
	if err := json.Unmarshal(res, &rows); err != nil {
		return nil, nil, &ParseError{Field: "count rows", Value: truncate(res), Err: err}
	}
	counts := make([]PeriodCount, 0, len(rows))
	var summary *IntensityCount
	for _, row := range rows {
		if row.Label == "合計" {
			total, err := row.toIntensityCount()
			if err != nil {
				return nil, nil, err
			}
			summary = &total
			continue
		}
		pc, err := row.toPeriodCount()
		if err != nil {
			return nil, nil, err
		}
		counts = append(counts, pc)
	}
	return counts, summary, nil
}

func (r eventRow) toEarthquake() (Earthquake, error) {
	ot, err := time.ParseInLocation(originTimeLayout, r.OriginTime, JST)
	if err != nil {
		return Earthquake{}, &ParseError{Field: "origin time", Value: r.OriginTime, Err: err}
	}

	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Earthquake{}, &ParseError{Field: "latitude", Value: r.Lat, Err: err}
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Earthquake{}, &ParseError{Field: "longitude", Value: r.Lon, Err: err}
	}

	depthStr, ok := strings.CutSuffix(r.Depth, " km")
	if !ok {
		return Earthquake{}, &ParseError{Field: "depth", Value: r.Depth}
	}
	depth, err := strconv.ParseFloat(depthStr, 64)
	if err != nil {
		return Earthquake{}, &ParseError{Field: "depth", Value: r.Depth, Err: err}
	}

	// Magnitude is a placeholder string for events with no determined value.
	var mag *float64
	if m, err := strconv.ParseFloat(r.Magnitude, 64); err == nil {
		mag = &m
	}

	maxInt, err := parseShindo(r.MaxIntensity)
	if err != nil {
		return Earthquake{}, err
	}

	return Earthquake{
		ID:           r.ID,
		OriginTime:   ot,
		Location:     r.Name,
		Latitude:     lat,
		Longitude:    lon,
		Depth:        depth,
		Magnitude:    mag,
		MaxIntensity: maxInt,
	}, nil
}

func (r stationRow) toStationIntensity() (StationIntensity, error) {
	code, err := strconv.Atoi(r.Code)
	if err != nil {
		return StationIntensity{}, &ParseError{Field: "station code", Value: r.Code, Err: err}
	}
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return StationIntensity{}, &ParseError{Field: "station latitude", Value: r.Lat, Err: err}
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return StationIntensity{}, &ParseError{Field: "station longitude", Value: r.Lon, Err: err}
	}
	level, err := parseShindo(r.Intensity)
	if err != nil {
		return StationIntensity{}, err
	}
	return StationIntensity{
		StationName: r.Name,
		StationCode: code,
		Latitude:    lat,
		Longitude:   lon,
		Intensity:   level,
	}, nil
}

// periodLayouts pairs each aggregation unit with its label layout, most
// specific first so "2011/03/11 14h" does not parse as a date.
var periodLayouts = []struct {
	unit   PeriodUnit
	layout string
}{
	{PeriodUnitHour, "2006/01/02 15h"},
	{PeriodUnitDay, "2006/01/02"},
	{PeriodUnitMonth, "2006/01"},
	{PeriodUnitYear, "2006年"},
}

func (r countRow) toPeriodCount() (PeriodCount, error) {
	for _, pl := range periodLayouts {
		start, err := time.ParseInLocation(pl.layout, r.Label, JST)
		if err != nil {
			continue
		}
		stations, err := r.toIntensityCount()
		if err != nil {
			return PeriodCount{}, err
		}
		return PeriodCount{Start: start, Unit: pl.unit, Stations: stations}, nil
	}
	return PeriodCount{}, &ParseError{Field: "period label", Value: r.Label}
}

func (r countRow) toIntensityCount() (IntensityCount, error) {
	var (
		count IntensityCount
		err   error
	)
	for _, f := range []struct {
		dst   *int
		value string
	}{
		{&count.One, r.S1},
		{&count.Two, r.S2},
		{&count.Three, r.S3},
		{&count.Four, r.S4},
		{&count.FiveLower, r.SA},
		{&count.FiveUpper, r.SB},
		{&count.SixLower, r.SC},
		{&count.SixUpper, r.SD},
		{&count.Seven, r.S7},
	} {
		// Empty cells mean zero observations.
		if f.value == "" {
			continue
		}
		if *f.dst, err = strconv.Atoi(f.value); err != nil {
			return IntensityCount{}, &ParseError{Field: "station count", Value: f.value, Err: err}
		}
	}
	return count, nil
}

func truncate(b []byte) string {
	const max = 120
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
