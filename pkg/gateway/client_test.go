package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{BaseURL: srv.URL + "/", Timeout: 2 * time.Second}, nil)
}

func TestClient_FetchJSON(t *testing.T) {
	var gotPath, gotFormat string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFormat = r.URL.Query().Get("format")
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"hash":"abc","value":2501355000,"tx":[{"hash":"t1"}]}`)
	})

	got, err := c.FetchJSON(context.Background(), []string{PathRawBlock, "abc"}, Params{"format": "json"})
	require.NoError(t, err)

	assert.Equal(t, "/rawblock/abc", gotPath)
	assert.Equal(t, "json", gotFormat)

	obj, ok := got.(map[string]any)
	require.True(t, ok, "payload is %T", got)
	assert.Equal(t, "abc", obj["hash"])

	value, ok := obj["value"].(fmt.Stringer)
	require.True(t, ok, "value decoded as %T", obj["value"])
	assert.Equal(t, "2501355000", value.String())
}

func TestClient_FetchJSON_ActiveParam(t *testing.T) {
	var active string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		active = r.URL.Query().Get(ParamActive)
		_, _ = fmt.Fprint(w, `{}`)
	})

	_, err := c.FetchJSON(context.Background(), []string{PathMultiAddr}, Params{ParamActive: "A1|A2"})
	require.NoError(t, err)
	assert.Equal(t, "A1|A2", active)
}

func TestClient_FetchJSON_Errors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    error
		wantStatus int
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "Block Not Found", http.StatusNotFound)
			},
			wantErr:    ErrRequestFailed,
			wantStatus: http.StatusNotFound,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    ErrRequestFailed,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = fmt.Fprint(w, `{"hash":`)
			},
			wantErr: ErrDecodeFailed,
		},
		{
			name: "html after object",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = fmt.Fprint(w, `{"hash":"abc"}<html>oops</html>`)
			},
			wantErr: ErrDecodeFailed,
		},
		{
			name: "extra closing brace",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = fmt.Fprint(w, `{"a":1}}`)
			},
			wantErr: ErrDecodeFailed,
		},
		{
			name: "number followed by text",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = fmt.Fprint(w, `12abc`)
			},
			wantErr: ErrDecodeFailed,
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantErr: ErrDecodeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			got, err := c.FetchJSON(context.Background(), []string{PathRawBlock, "missing"}, nil)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.wantErr), "error %v is not %v", err, tt.wantErr)

			status, ok := StatusCode(err)
			assert.Equal(t, tt.wantStatus != 0, ok)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestDecodeJSON_TrailingData(t *testing.T) {
	for _, body := range []string{`{"hash":"a"} not json`, `12abc`, `[1,2]]`, `{"a":1},`} {
		got, err := DecodeJSON([]byte(body))
		assert.ErrorIs(t, err, ErrDecodeFailed, body)
		assert.Nil(t, got, body)
	}

	got, err := DecodeJSON([]byte("{\"hash\":\"a\"}\n  "))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"hash": "a"}, got)
}

func TestClient_FetchJSON_CanceledContext(t *testing.T) {
	hits := 0
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = fmt.Fprint(w, `{}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchJSON(ctx, []string{PathLatestBlock}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, hits)
}

func TestClient_FetchText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/q/getblockcount":
			_, _ = fmt.Fprint(w, "301031\n")
		case "/q/getdifficulty":
			_, _ = fmt.Fprint(w, "8.853416309E9")
		case "/q/latesthash":
			_, _ = fmt.Fprint(w, "0000000000000000098674acf363d04a51e84e8ef19168189505322b32cfc4f9")
		default:
			_, _ = fmt.Fprint(w, "not-a-number")
		}
	})
	ctx := context.Background()

	count, err := FetchScalar[int64](ctx, c, []string{PathQuery, "getblockcount"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(301031), count)

	difficulty, err := FetchScalar[float64](ctx, c, []string{PathQuery, "getdifficulty"}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 8.853416309e9, difficulty, 1)

	hash, err := FetchScalar[string](ctx, c, []string{PathQuery, "latesthash"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "0000000000000000098674acf363d04a51e84e8ef19168189505322b32cfc4f9", hash)

	_, err = FetchScalar[int64](ctx, c, []string{PathQuery, "interval"}, nil)
	assert.ErrorIs(t, err, ErrDecodeFailed)
}

func TestParseScalar(t *testing.T) {
	i, err := ParseScalar[int64]("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), i)

	f, err := ParseScalar[float64]("600.5")
	require.NoError(t, err)
	assert.Equal(t, 600.5, f)

	_, err = ParseScalar[int64]("4.2")
	assert.ErrorIs(t, err, ErrDecodeFailed)

	_, err = ParseScalar[float64]("")
	assert.ErrorIs(t, err, ErrDecodeFailed)
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		name string
		path []string
		want string
	}{
		{name: "single", path: []string{"latestblock"}, want: "/latestblock"},
		{name: "segments", path: []string{"rawblock", "123"}, want: "/rawblock/123"},
		{name: "escapes", path: []string{"charts", "market price"}, want: "/charts/market%20price"},
		{name: "empty", path: nil, want: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinPath(tt.path))
		})
	}
}

func TestParams(t *testing.T) {
	base := Params{"limit": "10"}

	withFormat := base.WithDefault(ParamFormat, FormatJSON)
	assert.Equal(t, Params{"limit": "10", "format": "json"}, withFormat)
	assert.Len(t, base, 1, "WithDefault must not mutate the receiver")

	kept := Params{"format": "html"}.WithDefault(ParamFormat, FormatJSON)
	assert.Equal(t, "html", kept[ParamFormat])

	var empty Params
	assert.Equal(t, Params{"active": "a|b"}, empty.With(ParamActive, "a|b"))
}
