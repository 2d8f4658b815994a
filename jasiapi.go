// Package jasiapi is an unofficial Go binding of the JMA Seismic Intensity
// Database search (気象庁 震度データベース検索).
//
// # Data Source
//
// The Japan Meteorological Agency publishes observed seismic intensities
// since 1919 through a search form at
// https://www.data.jma.go.jp/svd/eqdb/data/shindo/. The form talks to a
// single endpoint (api/api.php) that accepts URL-encoded form fields and
// answers a JSON envelope {"res": ...}. None of this is a documented API:
// field names, encodings, and response shapes are whatever the site
// currently ships and may change without notice.
//
// # Upstream Conventions
//
// Datetimes:
//
//	Origin times arrive as "2011/03/11 14:46:18.1" in Japan Standard Time
//	(UTC+9). Date filters are sent as a pair of values per field,
//	"yyyy-mm-dd" and "HH:MM". Searchable range runs from 1919-01-01 up to
//	two days before the current JST date.
//
// Intensity labels:
//
//	Records carry labels like "震度５弱" (intensity 5 lower) with full-width
//	digits. Query parameters use a different alphabet: 1-4 and 7 as plain
//	digits, and A/B/C/D for 5 lower / 5 upper / 6 lower / 6 upper.
//	Levels 5 and 6 were subdivided into lower/upper on 1996-10-01
//	([ScaleRevisionDate]); earlier records use the unsubdivided labels
//	"震度５" and "震度６", which have no query code.
//
// Stations:
//
//	A trailing "＊" on a station name marks a station operated by a local
//	government or NIED rather than by the JMA itself.
//
// Hypocenter fields:
//
//	Depth arrives as "<km> km". Magnitude may be a non-numeric placeholder
//	for events with no determined magnitude.
//
// # Limits
//
// Search results are truncated by the upstream to the first 1,000 events
// without any warning. Every call performs exactly one synchronous HTTP
// round trip; there is no retry, caching, or batching.
package jasiapi

import "time"

const (
	// BaseURL is the root of the JMA Seismic Intensity Database site.
	BaseURL = "https://www.data.jma.go.jp/svd/eqdb/data/shindo"

	apiPath      = "/api/api.php"
	cityPath     = "/js/city.json"
	stationPath  = "/js/station.json"
	regionPath   = "/js/epi.json"
	eventIDLen   = 14
	earliestYear = 1919
)

// JST is the fixed UTC+9 offset all upstream datetimes are expressed in.
var JST = time.FixedZone("JST", 9*60*60)

// earliestSearchable is the lower bound of the upstream database.
var earliestSearchable = time.Date(earliestYear, time.January, 1, 0, 0, 0, 0, JST)
