package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSection_SameMetric(t *testing.T) {
	s := NewSection("section")
	assert.Equal(t, s, NewSection("section"))

	s.Counter("Scripts").Add(2)
	s.Counter("Scripts").Add(1)
	assert.EqualValues(t, 3, s.Counter("Scripts").GetValue())
	assert.True(t, s.Breakdown("Codes") == s.Breakdown("Codes"))
}

func TestSection_MarshalJSON(t *testing.T) {
	s := newEmptySection("inline")
	s.Counter("Documents").Add(4)

	var buf []byte
	var err error
	done := make(chan struct{})
	go func() {
		buf, err = s.MarshalJSON()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Section.MarshalJSON did not terminate")
	}
	require.NoError(t, err)

	var decoded struct {
		Name     string
		Counters map[string]json.RawMessage
	}
	require.NoError(t, json.Unmarshal(buf, &decoded))
	assert.Equal(t, "inline", decoded.Name)
	assert.Contains(t, decoded.Counters, "Documents")
}

func TestBreakdown_HitAndAddConcurrent(t *testing.T) {
	b := newBreakdown()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b.HitAndAdd("200")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"200"}, b.Categories)
	assert.EqualValues(t, 800, b.Count("200"))
	assert.Equal(t, map[string]float64{"200": 100}, b.Value())
}
