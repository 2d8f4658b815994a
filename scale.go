package jasiapi

import "time"

// Intensity is a level on the JMA seismic intensity scale. The underlying
// values are spaced so that ordering follows the scale, including the
// unsubdivided historical levels 5 and 6 which sit between their lower and
// upper variants.
type Intensity uint8

const (
	Intensity1      Intensity = 10
	Intensity2      Intensity = 20
	Intensity3      Intensity = 30
	Intensity4      Intensity = 40
	Intensity5Lower Intensity = 50
	Intensity5      Intensity = 55 // unsubdivided, records before ScaleRevisionDate
	Intensity5Upper Intensity = 60
	Intensity6Lower Intensity = 70
	Intensity6      Intensity = 75 // unsubdivided, records before ScaleRevisionDate
	Intensity6Upper Intensity = 80
	Intensity7      Intensity = 90
)

// ScaleRevisionDate is when the JMA subdivided intensities 5 and 6 into
// lower/upper. Records before this instant use [Intensity5] and
// [Intensity6] instead of the subdivided levels.
var ScaleRevisionDate = time.Date(1996, time.October, 1, 0, 0, 0, 0, JST)

var intensityLabels = map[Intensity]string{
	Intensity1:      "1",
	Intensity2:      "2",
	Intensity3:      "3",
	Intensity4:      "4",
	Intensity5Lower: "5 Lower",
	Intensity5:      "5",
	Intensity5Upper: "5 Upper",
	Intensity6Lower: "6 Lower",
	Intensity6:      "6",
	Intensity6Upper: "6 Upper",
	Intensity7:      "7",
}

// shindoLabels maps the upstream record labels (full-width digits) to levels.
var shindoLabels = map[string]Intensity{
	"震度１":  Intensity1,
	"震度２":  Intensity2,
	"震度３":  Intensity3,
	"震度４":  Intensity4,
	"震度５":  Intensity5,
	"震度５弱": Intensity5Lower,
	"震度５強": Intensity5Upper,
	"震度６":  Intensity6,
	"震度６弱": Intensity6Lower,
	"震度６強": Intensity6Upper,
	"震度７":  Intensity7,
}

// queryCodes maps levels to the codes the search form accepts as thresholds.
// The unsubdivided levels have no code.
var queryCodes = map[Intensity]string{
	Intensity1:      "1",
	Intensity2:      "2",
	Intensity3:      "3",
	Intensity4:      "4",
	Intensity5Lower: "A",
	Intensity5Upper: "B",
	Intensity6Lower: "C",
	Intensity6Upper: "D",
	Intensity7:      "7",
}

// String returns the display label, e.g. "5 Lower". Unknown values render
// as "invalid".
func (i Intensity) String() string {
	if s, ok := intensityLabels[i]; ok {
		return s
	}
	return "invalid"
}

// Valid reports whether i is a defined level.
func (i Intensity) Valid() bool {
	_, ok := intensityLabels[i]
	return ok
}

// Subdivided reports whether i is one of the post-revision lower/upper
// levels.
func (i Intensity) Subdivided() bool {
	switch i {
	case Intensity5Lower, Intensity5Upper, Intensity6Lower, Intensity6Upper:
		return true
	}
	return false
}

// ParseIntensity converts a display label produced by [Intensity.String]
// back into its level.
func ParseIntensity(label string) (Intensity, error) {
	for level, s := range intensityLabels {
		if s == label {
			return level, nil
		}
	}
	return 0, &ParseError{Field: "intensity", Value: label}
}

// queryCode returns the search form code for a threshold level. The
// unsubdivided 5 and 6 are not accepted by the form.
func (i Intensity) queryCode() (string, bool) {
	c, ok := queryCodes[i]
	return c, ok
}

// parseShindo converts an upstream record label like "震度５弱" into a level.
func parseShindo(s string) (Intensity, error) {
	if level, ok := shindoLabels[s]; ok {
		return level, nil
	}
	return 0, &ParseError{Field: "intensity", Value: s}
}
