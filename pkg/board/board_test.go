package board

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rows = []string{
	"ABCDEFG",
	"HIJKLMN",
	"OPQRSTU",
	"VWXYZAB",
	"CDEFGHI",
	"JKLMNOP",
	"CSIPLEK",
}

func TestFromRows(t *testing.T) {
	b, err := FromRows("20250101", rows)
	require.NoError(t, err)

	assert.Equal(t, "csiplek", b.Available())
	assert.Equal(t, byte('a'), b.Columns[0][Size-1])

	l, ok := b.Get(0, 1)
	assert.True(t, ok)
	assert.Equal(t, byte('j'), l)

	_, ok = b.Get(0, Size)
	assert.False(t, ok)
	_, ok = b.Get(Size, 0)
	assert.False(t, ok)
	_, ok = b.Get(-1, 0)
	assert.False(t, ok)

	assert.Equal(t, []string{"abcdefg", "hijklmn", "opqrstu", "vwxyzab", "cdefghi", "jklmnop", "csiplek"}, b.Rows())
}

func TestAvailableAfterConsumption(t *testing.T) {
	b, err := FromRows("20250101", rows)
	require.NoError(t, err)

	b.ColumnBottom[0] = 1
	b.ColumnBottom[6] = Size
	assert.Equal(t, "jsiple?", b.Available())
}

func TestFromRowsMalformed(t *testing.T) {
	_, err := FromRows("x", rows[:6])
	assert.ErrorIs(t, err, ErrBadBoard)

	bad := append([]string{}, rows...)
	bad[3] = "short"
	_, err = FromRows("x", bad)
	assert.ErrorIs(t, err, ErrBadBoard)
}

func TestFetcherDownloadsAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/20250101.json" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(rows)
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir(), srv.URL+"/", time.Second)

	b, err := f.Get(context.Background(), "20250101")
	require.NoError(t, err)
	assert.Equal(t, "csiplek", b.Available())
	assert.FileExists(t, f.CachePath("20250101"))

	again, err := f.Get(context.Background(), "20250101")
	require.NoError(t, err)
	assert.Equal(t, b, again)
	assert.Equal(t, int32(1), hits.Load())

	_, err = f.Get(context.Background(), "19990101")
	assert.ErrorContains(t, err, "unexpected status")
}

func TestFetcherMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "rows"}`))
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir(), srv.URL, time.Second)
	_, err := f.Get(context.Background(), "20250101")
	assert.ErrorIs(t, err, ErrBadBoard)
	assert.NoFileExists(t, f.CachePath("20250101"))
}

func TestFetcherIgnoresCorruptCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rows)
	}))
	defer srv.Close()

	f := NewFetcher(t.TempDir(), srv.URL, time.Second)
	require.NoError(t, os.WriteFile(filepath.Join(f.CacheDir, "20250101.json"), []byte("{"), 0644))

	b, err := f.Get(context.Background(), "20250101")
	require.NoError(t, err)
	assert.Equal(t, "csiplek", b.Available())
}

func TestFetcherCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rows)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(t.TempDir(), srv.URL, time.Second)
	_, err := f.Get(ctx, "20250101")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToday(t *testing.T) {
	assert.Len(t, Today(), 8)
}
