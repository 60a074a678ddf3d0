package prettyfastserver

import (
	"compress/gzip"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gosourcemap "github.com/go-sourcemap/sourcemap"
	"github.com/kiteco/prettyfast/kite-go/lang/javascript/prettyfast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type response struct {
	Code    string          `json:"code"`
	Map     json.RawMessage `json:"map"`
	Diff    string          `json:"diff"`
	Scripts int             `json:"scripts"`

	Error  string `json:"error"`
	Line   *int   `json:"line"`
	Column *int   `json:"column"`
}

func newTestServer(t *testing.T, maxBytes int64) *Server {
	s, err := NewServer(Options{
		CacheSize: 10,
		MaxBytes:  maxBytes,
		Config:    prettyfast.DefaultConfig(),
	}, zap.NewNop())
	require.NoError(t, err)
	return s
}

func post(t *testing.T, s *Server, path, body string) (int, response) {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("POST", path, strings.NewReader(body)))

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestPrettify(t *testing.T) {
	s := newTestServer(t, 0)

	code, resp := post(t, s, "/prettify", `{"source": "if(a){b()}", "url": "a.js"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "if (a) {\n  b()\n}\n", resp.Code)
	assert.Empty(t, resp.Diff)

	consumer, err := gosourcemap.Parse("a.js.map", resp.Map)
	require.NoError(t, err)
	source, _, line, col, ok := consumer.Source(2, 2)
	require.True(t, ok)
	assert.Equal(t, "a.js", source)
	assert.Equal(t, 1, line)
	assert.Equal(t, 6, col)
}

func TestPrettify_Options(t *testing.T) {
	s := newTestServer(t, 0)

	code, resp := post(t, s, "/prettify", `{"source": "{a}", "indent": "\t"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "{\n\ta\n}\n", resp.Code)

	code, resp = post(t, s, "/prettify", `{"source": "a", "original_start_line": -1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Error, "original_start_line")
}

func TestPrettify_Cache(t *testing.T) {
	s := newTestServer(t, 0)

	_, first := post(t, s, "/prettify", `{"source": "a;b"}`)
	_, second := post(t, s, "/prettify", `{"source": "a;b"}`)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.cache.Len())

	// check mode is part of the key
	_, third := post(t, s, "/prettify?check=1", `{"source": "a;b"}`)
	assert.Equal(t, 2, s.cache.Len())
	assert.Equal(t, "-a;b\n+a;\n+b\n", third.Diff)
}

func TestPrettify_Check(t *testing.T) {
	s := newTestServer(t, 0)

	code, resp := post(t, s, "/prettify?check=1", `{"source": "a;\nb\n"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp.Diff)
}

func TestPrettify_HTML(t *testing.T) {
	s := newTestServer(t, 0)

	code, resp := post(t, s, "/prettify", `{"source": "<p>x</p><script>a</script>", "html": true}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "<p>x</p><script>\na\n</script>", resp.Code)
	assert.Equal(t, 1, resp.Scripts)
}

func TestPrettify_Errors(t *testing.T) {
	s := newTestServer(t, 64)

	code, resp := post(t, s, "/prettify", `{"source": `)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Error, "unmarshalling")

	code, resp = post(t, s, "/prettify", `{"source": "`+strings.Repeat("a", 100)+`"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, resp.Error, "reading request")

	code, resp = post(t, s, "/prettify", `{"source": "x = 'abc"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, resp.Error, "unterminated string constant")
	require.NotNil(t, resp.Line)
	require.NotNil(t, resp.Column)
	assert.Equal(t, 1, *resp.Line)
	assert.Equal(t, 4, *resp.Column)

	code, resp = post(t, s, "/prettify", `{"source": "<script>\n'abc</script>", "html": true}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, resp.Line)
	assert.Equal(t, 2, *resp.Line)
	assert.Equal(t, 0, *resp.Column)
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t, 0)
	h := s.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/prettify", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	post(t, s, "/prettify", `{"source": "a"}`)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/debug/status-json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-cache, no-store, must-revalidate", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), `"prettyfastserver"`)
	assert.Contains(t, w.Body.String(), `"prettyfast"`)
}

func TestNewServer_InvalidCacheSize(t *testing.T) {
	_, err := NewServer(Options{Config: prettyfast.DefaultConfig()}, zap.NewNop())
	assert.Error(t, err)
}

func TestPrettify_Gzip(t *testing.T) {
	s := newTestServer(t, 0)

	req := httptest.NewRequest("POST", "/prettify", strings.NewReader(`{"source": "a;b"}`))
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	buf, err := ioutil.ReadAll(zr)
	require.NoError(t, err)

	var resp response
	require.NoError(t, json.Unmarshal(buf, &resp))
	assert.Equal(t, "a;\nb\n", resp.Code)
}
