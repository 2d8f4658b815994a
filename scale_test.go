package jasiapi

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allIntensities = []Intensity{
	Intensity1, Intensity2, Intensity3, Intensity4,
	Intensity5Lower, Intensity5, Intensity5Upper,
	Intensity6Lower, Intensity6, Intensity6Upper,
	Intensity7,
}

func TestIntensity_LabelRoundTrip(t *testing.T) {
	for _, level := range allIntensities {
		label := level.String()
		parsed, err := ParseIntensity(label)
		require.NoError(t, err, "label %q", label)
		assert.Equal(t, level, parsed, "label %q", label)
	}
}

func TestParseIntensity_Unknown(t *testing.T) {
	_, err := ParseIntensity("8")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestIntensity_Ordering(t *testing.T) {
	for i := 1; i < len(allIntensities); i++ {
		assert.Less(t, allIntensities[i-1], allIntensities[i])
	}
}

func TestIntensity_SortDescending(t *testing.T) {
	levels := []Intensity{Intensity3, Intensity7, Intensity4}
	sort.Slice(levels, func(i, j int) bool { return levels[i] > levels[j] })
	assert.Equal(t, []Intensity{Intensity7, Intensity4, Intensity3}, levels)
}

func TestIntensity_Subdivided(t *testing.T) {
	assert.True(t, Intensity5Lower.Subdivided())
	assert.True(t, Intensity6Upper.Subdivided())
	assert.False(t, Intensity5.Subdivided())
	assert.False(t, Intensity6.Subdivided())
	assert.False(t, Intensity4.Subdivided())
	assert.False(t, Intensity7.Subdivided())
}

func TestIntensity_QueryCodes(t *testing.T) {
	cases := map[Intensity]string{
		Intensity1:      "1",
		Intensity4:      "4",
		Intensity5Lower: "A",
		Intensity5Upper: "B",
		Intensity6Lower: "C",
		Intensity6Upper: "D",
		Intensity7:      "7",
	}
	for level, want := range cases {
		code, ok := level.queryCode()
		require.True(t, ok, "level %s", level)
		assert.Equal(t, want, code)
	}

	// Historical unsubdivided levels cannot be used as thresholds.
	_, ok := Intensity5.queryCode()
	assert.False(t, ok)
	_, ok = Intensity6.queryCode()
	assert.False(t, ok)
}

func TestParseShindo(t *testing.T) {
	cases := map[string]Intensity{
		"震度１":  Intensity1,
		"震度４":  Intensity4,
		"震度５":  Intensity5,
		"震度５弱": Intensity5Lower,
		"震度５強": Intensity5Upper,
		"震度６":  Intensity6,
		"震度６弱": Intensity6Lower,
		"震度６強": Intensity6Upper,
		"震度７":  Intensity7,
	}
	for label, want := range cases {
		got, err := parseShindo(label)
		require.NoError(t, err, "label %q", label)
		assert.Equal(t, want, got)
	}

	_, err := parseShindo("震度８")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "震度８", parseErr.Value)
}

func TestScaleRevisionDate(t *testing.T) {
	assert.Equal(t, 1996, ScaleRevisionDate.Year())
	_, offset := ScaleRevisionDate.Zone()
	assert.Equal(t, 9*60*60, offset)
}

func TestIntensity_InvalidString(t *testing.T) {
	assert.Equal(t, "invalid", Intensity(99).String())
	assert.False(t, Intensity(99).Valid())
}
