package status

import (
	"encoding/json"
	"sync"
)

// Section represents a grouping of Counters, Ratios, Breakdowns and sampled values.
type Section struct {
	Name string

	Counters   map[string]*Counter
	Ratios     map[string]*Ratio
	Breakdowns map[string]*Breakdown

	SampleInt64s    map[string]*SampleInt64
	SampleDurations map[string]*SampleDuration
	SampleBytes     map[string]*SampleBytes

	m sync.Mutex
}

// NewSection builds a new Section with the provided name.
func NewSection(name string) *Section {
	s.m.Lock()
	defer s.m.Unlock()

	var exists bool
	var section *Section
	if section, exists = s.Sections[name]; !exists {
		section = newEmptySection(name)
		s.Sections[name] = section
	}
	return section
}

func newEmptySection(name string) *Section {
	return &Section{
		Name: name,

		Counters:   make(map[string]*Counter),
		Ratios:     make(map[string]*Ratio),
		Breakdowns: make(map[string]*Breakdown),

		SampleInt64s:    make(map[string]*SampleInt64),
		SampleDurations: make(map[string]*SampleDuration),
		SampleBytes:     make(map[string]*SampleBytes),
	}
}

// MarshalJSON is implemented to avoid concurrent map access. It holds the section lock,
// and avoids recursive calls into MarshalJSON.
func (s *Section) MarshalJSON() ([]byte, error) {
	s.m.Lock()
	defer s.m.Unlock()

	// to avoid recursive call into MarshalJSON (and the subsequent deadlock),
	// create a temporary type to mask the MarshalJSON method
	type tmp Section
	return json.Marshal((*tmp)(s))
}

// Counter creates a new counter with the provided name.
func (s *Section) Counter(name string) *Counter {
	s.m.Lock()
	defer s.m.Unlock()

	var exists bool
	var counter *Counter
	if counter, exists = s.Counters[name]; !exists {
		counter = newCounter()
		s.Counters[name] = counter
	}
	return counter
}

// Ratio creates a new ratio metric with the provided name.
func (s *Section) Ratio(name string) *Ratio {
	s.m.Lock()
	defer s.m.Unlock()

	var exists bool
	var ratio *Ratio
	if ratio, exists = s.Ratios[name]; !exists {
		ratio = newRatio()
		s.Ratios[name] = ratio
	}
	return ratio
}

// Breakdown returns a new Breakdown metric with the provided name.
func (s *Section) Breakdown(name string) *Breakdown {
	s.m.Lock()
	defer s.m.Unlock()

	var exists bool
	var breakdown *Breakdown
	if breakdown, exists = s.Breakdowns[name]; !exists {
		breakdown = newBreakdown()
		s.Breakdowns[name] = breakdown
	}

	return breakdown
}

// SampleInt64 creates a new SampleInt64 metric with the provided name.
func (s *Section) SampleInt64(name string) *SampleInt64 {
	s.m.Lock()
	defer s.m.Unlock()

	var exists bool
	var ad *SampleInt64
	if ad, exists = s.SampleInt64s[name]; !exists {
		ad = newSampleInt64()
		s.SampleInt64s[name] = ad
	}

	return ad
}

// SampleByte creates a new SampleByte metric with the provided name.
func (s *Section) SampleByte(name string) *SampleBytes {
	s.m.Lock()
	defer s.m.Unlock()

	var exists bool
	var ad *SampleBytes
	if ad, exists = s.SampleBytes[name]; !exists {
		ad = newSampleBytes()
		s.SampleBytes[name] = ad
	}

	return ad
}

// SampleDuration creates a new SampleDuration metric with the provided name.
func (s *Section) SampleDuration(name string) *SampleDuration {
	s.m.Lock()
	defer s.m.Unlock()
	var exists bool
	var ad *SampleDuration
	if ad, exists = s.SampleDurations[name]; !exists {
		ad = newSampleDuration()
		s.SampleDurations[name] = ad
	}

	return ad
}
