package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSection_Summary(t *testing.T) {
	section := NewSection("summary")
	section.Counter("Errors").Add(1234)
	section.SampleByte("Input").Record(2048)

	d := section.SampleDuration("Took")
	d.Headline = true
	d.Record(3 * time.Millisecond)

	lines := strings.Split(strings.TrimSpace(section.Summary()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "summary.Took: n=1 p25=3ms"), lines[0])
	assert.Equal(t, "summary.Errors: 1,234", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "summary.Input: n=1 p25=2.0 kB"), lines[2])
}

func TestRecordStatusCode(t *testing.T) {
	codes := NewSection("codes").Breakdown("Codes")
	handler := RecordStatusCode(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bad":
			http.Error(w, "bad", http.StatusBadRequest)
		case "/empty":
		default:
			w.Write([]byte("ok"))
		}
	}, codes)

	for _, path := range []string{"/", "/empty", "/bad"} {
		handler(httptest.NewRecorder(), httptest.NewRequest("GET", path, nil))
	}

	assert.EqualValues(t, 2, codes.Count("200"))
	assert.EqualValues(t, 1, codes.Count("400"))
	assert.InDelta(t, 100.0/3, codes.Value()["400"], 0.01)
}

func TestHandlerJSON(t *testing.T) {
	NewSection("handler").Counter("Hits").Add(3)

	rec := httptest.NewRecorder()
	HandlerJSON(rec, httptest.NewRequest("GET", "/debug/status-json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status struct {
			Sections map[string]struct {
				Counters map[string]struct {
					Value int64
				}
			}
		} `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 3, resp.Status.Sections["handler"].Counters["Hits"].Value)
}
