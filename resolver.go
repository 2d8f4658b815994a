package jasiapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
)

// prefectures is the fixed JMA prefecture code table used by the search
// form. Codes are stable; the list ships with the site itself.
var prefectures = map[int]string{
	10: "北海道",
	20: "青森県",
	21: "岩手県",
	22: "宮城県",
	23: "秋田県",
	24: "山形県",
	25: "福島県",
	30: "茨城県",
	31: "栃木県",
	32: "群馬県",
	33: "埼玉県",
	34: "千葉県",
	35: "東京都",
	36: "神奈川県",
	37: "新潟県",
	38: "富山県",
	39: "石川県",
	40: "福井県",
	41: "山梨県",
	42: "長野県",
	43: "岐阜県",
	44: "静岡県",
	45: "愛知県",
	46: "三重県",
	50: "滋賀県",
	51: "京都府",
	52: "大阪府",
	53: "兵庫県",
	54: "奈良県",
	55: "和歌山県",
	56: "鳥取県",
	57: "島根県",
	58: "岡山県",
	59: "広島県",
	60: "徳島県",
	61: "香川県",
	62: "愛媛県",
	63: "高知県",
	70: "山口県",
	71: "福岡県",
	72: "佐賀県",
	73: "長崎県",
	74: "熊本県",
	75: "大分県",
	76: "宮崎県",
	77: "鹿児島県",
	80: "沖縄県",
}

// Resolver translates between the names and numeric codes the search form
// uses for prefectures, cities, stations, and epicenter regions. The
// prefecture table is compiled in; the rest load lazily from the site's
// static JSON tables on first use and stay in memory afterwards. A failed
// load is retried on the next call.
//
// Resolver is safe for concurrent use.
type Resolver struct {
	client *Client

	mu       sync.Mutex
	cities   *codeTable
	stations *codeTable
	regions  []string
}

// NewResolver creates a resolver sharing the given client's transport.
func NewResolver(c *Client) *Resolver {
	return &Resolver{client: c}
}

// PrefectureCodes returns all prefecture codes, unordered.
func (r *Resolver) PrefectureCodes() []int {
	codes := make([]int, 0, len(prefectures))
	for code := range prefectures {
		codes = append(codes, code)
	}
	return codes
}

// PrefectureName resolves a prefecture code to its Japanese name.
func (r *Resolver) PrefectureName(code int) (string, bool) {
	name, ok := prefectures[code]
	return name, ok
}

// PrefectureCode resolves a Japanese prefecture name to its code.
func (r *Resolver) PrefectureCode(name string) (int, bool) {
	for code, n := range prefectures {
		if n == name {
			return code, true
		}
	}
	return 0, false
}

// CityName resolves a city code to its Japanese name.
func (r *Resolver) CityName(ctx context.Context, code int) (string, error) {
	table, err := r.cityTable(ctx)
	if err != nil {
		return "", err
	}
	name, ok := table.byCode[code]
	if !ok {
		return "", fmt.Errorf("unknown city code %d", code)
	}
	return name, nil
}

// CityCode resolves a Japanese city name to its code.
func (r *Resolver) CityCode(ctx context.Context, name string) (int, error) {
	table, err := r.cityTable(ctx)
	if err != nil {
		return 0, err
	}
	code, ok := table.byName[name]
	if !ok {
		return 0, fmt.Errorf("unknown city name %q", name)
	}
	return code, nil
}

// StationName resolves a seismic station code to its Japanese name.
func (r *Resolver) StationName(ctx context.Context, code int) (string, error) {
	table, err := r.stationTable(ctx)
	if err != nil {
		return "", err
	}
	name, ok := table.byCode[code]
	if !ok {
		return "", fmt.Errorf("unknown station code %d", code)
	}
	return name, nil
}

// StationCode resolves a Japanese seismic station name to its code.
func (r *Resolver) StationCode(ctx context.Context, name string) (int, error) {
	table, err := r.stationTable(ctx)
	if err != nil {
		return 0, err
	}
	code, ok := table.byName[name]
	if !ok {
		return 0, fmt.Errorf("unknown station name %q", name)
	}
	return code, nil
}

// RegionNames returns all epicenter region names in upstream order.
func (r *Resolver) RegionNames(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.regions == nil {
		body, err := r.client.get(ctx, regionPath)
		if err != nil {
			return nil, err
		}
		var rows []struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, &ParseError{Field: "region table", Value: truncate(body), Err: err}
		}
		names := make([]string, 0, len(rows))
		for _, row := range rows {
			names = append(names, row.Name)
		}
		r.regions = names
	}
	out := make([]string, len(r.regions))
	copy(out, r.regions)
	return out, nil
}

// IsRegionName reports whether name is a known epicenter region.
func (r *Resolver) IsRegionName(ctx context.Context, name string) (bool, error) {
	names, err := r.RegionNames(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

type codeTable struct {
	byCode map[int]string
	byName map[string]int
}

func (r *Resolver) cityTable(ctx context.Context) (*codeTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cities == nil {
		table, err := r.fetchTable(ctx, cityPath, "city table")
		if err != nil {
			return nil, err
		}
		r.cities = table
	}
	return r.cities, nil
}

func (r *Resolver) stationTable(ctx context.Context) (*codeTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stations == nil {
		table, err := r.fetchTable(ctx, stationPath, "station table")
		if err != nil {
			return nil, err
		}
		r.stations = table
	}
	return r.stations, nil
}

func (r *Resolver) fetchTable(ctx context.Context, path, what string) (*codeTable, error) {
	body, err := r.client.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Code string   `json:"code"`
		Name string   `json:"name"`
		Disp looseBool `json:"disp"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &ParseError{Field: what, Value: truncate(body), Err: err}
	}

	table := &codeTable{
		byCode: make(map[int]string, len(rows)),
		byName: make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		// Entries flagged non-display are retired codes.
		if !bool(row.Disp) {
			continue
		}
		code, err := strconv.Atoi(row.Code)
		if err != nil {
			return nil, &ParseError{Field: what + " code", Value: row.Code, Err: err}
		}
		table.byCode[code] = row.Name
		table.byName[row.Name] = code
	}
	return table, nil
}

// looseBool accepts the bool, number, and string truthiness variants that
// appear in the site's static tables.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "false", "0", `""`, `"0"`, `"false"`:
		*b = false
	default:
		*b = true
	}
	return nil
}
