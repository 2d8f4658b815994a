package jasiapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cityFixture = `[
{"code":"3520","name":"東京千代田区","disp":true},
{"code":"3521","name":"東京中央区","disp":1},
{"code":"3599","name":"旧東京市","disp":false},
{"code":"3598","name":"旧品川町","disp":0}
]`

const stationFixture = `[
{"code":"2205220","name":"栗原市築館","disp":true},
{"code":"3500000","name":"東京","disp":"1"}
]`

const regionFixture = `[
{"name":"三陸沖"},
{"name":"宮城県沖"},
{"name":"千葉県東方沖"}
]`

func resolverServer(t *testing.T) (*Resolver, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case cityPath:
			_, _ = w.Write([]byte(cityFixture))
		case stationPath:
			_, _ = w.Write([]byte(stationFixture))
		case regionPath:
			_, _ = w.Write([]byte(regionFixture))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return NewResolver(testClient(srv.URL)), &hits
}

func TestResolver_Prefectures(t *testing.T) {
	r := NewResolver(testClient("http://unused.invalid"))

	name, ok := r.PrefectureName(35)
	require.True(t, ok)
	assert.Equal(t, "東京都", name)

	code, ok := r.PrefectureCode("北海道")
	require.True(t, ok)
	assert.Equal(t, 10, code)

	_, ok = r.PrefectureName(11)
	assert.False(t, ok)
	_, ok = r.PrefectureCode("江戸")
	assert.False(t, ok)

	assert.Len(t, r.PrefectureCodes(), 47)
}

func TestResolver_Cities(t *testing.T) {
	r, hits := resolverServer(t)
	ctx := context.Background()

	name, err := r.CityName(ctx, 3520)
	require.NoError(t, err)
	assert.Equal(t, "東京千代田区", name)

	code, err := r.CityCode(ctx, "東京中央区")
	require.NoError(t, err)
	assert.Equal(t, 3521, code)

	// Non-display entries are retired codes and must not resolve.
	_, err = r.CityName(ctx, 3599)
	require.Error(t, err)
	_, err = r.CityName(ctx, 3598)
	require.Error(t, err)

	// The table loads once and is reused across lookups.
	assert.Equal(t, int64(1), hits.Load())
}

func TestResolver_Stations(t *testing.T) {
	r, _ := resolverServer(t)
	ctx := context.Background()

	name, err := r.StationName(ctx, 2205220)
	require.NoError(t, err)
	assert.Equal(t, "栗原市築館", name)

	code, err := r.StationCode(ctx, "東京")
	require.NoError(t, err)
	assert.Equal(t, 3500000, code)

	_, err = r.StationCode(ctx, "不在")
	require.Error(t, err)
}

func TestResolver_Regions(t *testing.T) {
	r, hits := resolverServer(t)
	ctx := context.Background()

	names, err := r.RegionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"三陸沖", "宮城県沖", "千葉県東方沖"}, names)

	ok, err := r.IsRegionName(ctx, "宮城県沖")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IsRegionName(ctx, "大西洋")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, int64(1), hits.Load())
}

func TestResolver_FailedLoadRetries(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "oops", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(cityFixture))
	}))
	defer srv.Close()

	r := NewResolver(testClient(srv.URL))
	ctx := context.Background()

	_, err := r.CityName(ctx, 3520)
	require.Error(t, err)

	name, err := r.CityName(ctx, 3520)
	require.NoError(t, err)
	assert.Equal(t, "東京千代田区", name)
	assert.Equal(t, int64(2), hits.Load())
}

func TestResolver_MalformedTable(t *testing.T) {
	srv, _ := fixtureServer(`{"not":"an array"}`)
	defer srv.Close()

	r := NewResolver(testClient(srv.URL))
	_, err := r.StationName(context.Background(), 1)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}
