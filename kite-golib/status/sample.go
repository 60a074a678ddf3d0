package status

import (
	"encoding/json"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// maxSamples bounds the reservoir kept by each sampled metric.
const maxSamples = 1024

// samplePercentiles are the percentiles reported by Values.
var samplePercentiles = []float64{0.25, 0.5, 0.75, 0.95, 0.99}

type int64Sort []int64

func (s int64Sort) Len() int           { return len(s) }
func (s int64Sort) Less(i, j int) bool { return s[i] < s[j] }
func (s int64Sort) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// sampler keeps a uniform random sample of the recorded values.
type sampler struct {
	m       sync.Mutex
	count   int64
	samples []int64
	rnd     *rand.Rand
}

func newSampler() *sampler {
	return &sampler{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *sampler) record(v int64) {
	s.m.Lock()
	defer s.m.Unlock()

	s.count++
	if len(s.samples) < maxSamples {
		s.samples = append(s.samples, v)
		return
	}
	if i := s.rnd.Int63n(s.count); i < maxSamples {
		s.samples[i] = v
	}
}

// Count returns the number of values that were recorded.
func (s *sampler) Count() int64 {
	s.m.Lock()
	defer s.m.Unlock()
	return s.count
}

// Values returns the sampled values at each of the percentiles in samplePercentiles.
func (s *sampler) Values() []int64 {
	s.m.Lock()
	samples := append([]int64(nil), s.samples...)
	s.m.Unlock()

	sort.Sort(int64Sort(samples))

	var ret []int64
	for _, p := range samplePercentiles {
		if len(samples) == 0 {
			ret = append(ret, 0)
			continue
		}
		idx := int(float64(len(samples)) * p)
		if idx >= len(samples) {
			idx = len(samples) - 1
		}
		ret = append(ret, samples[idx])
	}
	return ret
}

func (s *sampler) marshal(headline bool) ([]byte, error) {
	return json.Marshal(struct {
		Count    int64
		Values   []int64
		Headline bool
	}{s.Count(), s.Values(), headline})
}

// SampleInt64 samples integer values.
type SampleInt64 struct {
	*sampler
	*settings
}

func newSampleInt64() *SampleInt64 {
	return &SampleInt64{sampler: newSampler(), settings: newSettings()}
}

// Record adds a value
func (s *SampleInt64) Record(v int64) {
	s.record(v)
}

// MarshalJSON implements json.Marshaler
func (s *SampleInt64) MarshalJSON() ([]byte, error) {
	return s.marshal(s.Headline)
}

// SampleBytes samples sizes in bytes.
type SampleBytes struct {
	*sampler
	*settings
}

func newSampleBytes() *SampleBytes {
	return &SampleBytes{sampler: newSampler(), settings: newSettings()}
}

// Record adds a size
func (s *SampleBytes) Record(n int64) {
	s.record(n)
}

// MarshalJSON implements json.Marshaler
func (s *SampleBytes) MarshalJSON() ([]byte, error) {
	return s.marshal(s.Headline)
}

// SampleDuration samples durations, reported in nanoseconds.
type SampleDuration struct {
	*sampler
	*settings
}

func newSampleDuration() *SampleDuration {
	return &SampleDuration{sampler: newSampler(), settings: newSettings()}
}

// Record adds a duration
func (s *SampleDuration) Record(d time.Duration) {
	s.record(int64(d))
}

// DeferRecord records the time elapsed since start, meant to be deferred:
//
//	defer metric.DeferRecord(time.Now())
func (s *SampleDuration) DeferRecord(start time.Time) {
	s.Record(time.Since(start))
}

// MarshalJSON implements json.Marshaler
func (s *SampleDuration) MarshalJSON() ([]byte, error) {
	return s.marshal(s.Headline)
}
