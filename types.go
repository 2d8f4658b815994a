package jasiapi

import "time"

// Earthquake is one event (hypocenter) row from the database.
type Earthquake struct {
	// ID is the upstream event identifier, a 14-digit compact timestamp
	// such as "20110311144618". It keys [Client.Intensities].
	ID string
	// OriginTime is the event time in JST.
	OriginTime time.Time
	// Location is the JMA name of the hypocenter region (in Japanese).
	Location string
	// Latitude and Longitude locate the epicenter in decimal degrees.
	Latitude  float64
	Longitude float64
	// Depth of the hypocenter in kilometers.
	Depth float64
	// Magnitude is the JMA magnitude, nil when not determined.
	Magnitude *float64
	// MaxIntensity is the largest intensity observed at any station.
	MaxIntensity Intensity
}

// StationIntensity is one per-station reading for an earthquake.
type StationIntensity struct {
	// StationName as reported upstream. A trailing "＊" marks a station
	// operated by a local government or NIED rather than the JMA.
	StationName string
	// StationCode is the numeric station identifier.
	StationCode int
	// Latitude and Longitude of the station in decimal degrees.
	Latitude  float64
	Longitude float64
	// Intensity observed at the station.
	Intensity Intensity
}

// Official reports whether the reading comes from a JMA-operated station.
func (s StationIntensity) Official() bool {
	return !hasNonJMAMarker(s.StationName)
}

// Range is an inclusive numeric filter bound.
type Range struct {
	Low  float64
	High float64
}

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Sort selects the ordering of search results.
type Sort int

const (
	// SortTimeAscending orders oldest first (the upstream default).
	SortTimeAscending Sort = iota
	// SortTimeDescending orders newest first.
	SortTimeDescending
	// SortIntensityDescending orders by maximum intensity, largest first.
	SortIntensityDescending
	// SortMagnitudeDescending orders by magnitude, largest first.
	SortMagnitudeDescending
)

var sortCodes = map[Sort]string{
	SortTimeAscending:       "S0",
	SortTimeDescending:      "S1",
	SortIntensityDescending: "S2",
	SortMagnitudeDescending: "S4",
}

func hasNonJMAMarker(name string) bool {
	runes := []rune(name)
	return len(runes) > 0 && runes[len(runes)-1] == '＊'
}
