package status

import (
	"sync"
	"sync/atomic"
)

// Counter is a basic counter metric
type Counter struct {
	Value int64
	*settings
}

func newCounter() *Counter {
	return &Counter{
		settings: newSettings(),
	}
}

// Add increments the counter by delta
func (c *Counter) Add(delta int64) {
	atomic.AddInt64(&c.Value, delta)
}

// GetValue returns the current count
func (c *Counter) GetValue() int64 {
	return atomic.LoadInt64(&c.Value)
}

// --

// Ratio is a basic ratio metric. The metric will report the percentage
// that Hit is called (vs Miss).
type Ratio struct {
	Numerator   int64
	Denominator int64
	*settings
}

func newRatio() *Ratio {
	return &Ratio{
		settings: newSettings(),
	}
}

// Hit increments the ratio and total count.
func (r *Ratio) Hit() {
	atomic.AddInt64(&r.Numerator, 1)
	atomic.AddInt64(&r.Denominator, 1)
}

// Miss increments the total count without changing the numerator.
func (r *Ratio) Miss() {
	atomic.AddInt64(&r.Denominator, 1)
}

// Value returns the current ratio as a percentage.
func (r *Ratio) Value() float64 {
	numerator, denominator := atomic.LoadInt64(&r.Numerator), atomic.LoadInt64(&r.Denominator)
	if denominator == 0 {
		return 0
	}
	return 100.0 * float64(numerator) / float64(denominator)
}

// --

// Breakdown is a metric that can be used to show how often different categories of
// a particular kind appear. Categories are created the first time they are hit.
type Breakdown struct {
	rw          sync.RWMutex
	Categories  []string
	Numerators  []int64
	Denominator int64

	*settings
}

func newBreakdown() *Breakdown {
	return &Breakdown{
		settings: newSettings(),
	}
}

// HitAndAdd increments the counter if the category exists. If it doesn't, it adds
// a new category, sets the counter to 1 and increments the total.
func (b *Breakdown) HitAndAdd(name string) {
	b.rw.RLock()
	var found bool
	for idx, c := range b.Categories {
		if name == c {
			atomic.AddInt64(&b.Numerators[idx], 1)
			found = true
			break
		}
	}
	if found {
		atomic.AddInt64(&b.Denominator, 1)
		b.rw.RUnlock()
		return
	}
	b.rw.RUnlock()

	b.rw.Lock()
	defer b.rw.Unlock()
	// another caller may have added it between the two locks
	for idx, c := range b.Categories {
		if name == c {
			atomic.AddInt64(&b.Numerators[idx], 1)
			atomic.AddInt64(&b.Denominator, 1)
			return
		}
	}
	b.Categories = append(b.Categories, name)
	b.Numerators = append(b.Numerators, 1)
	atomic.AddInt64(&b.Denominator, 1)
}

// Value returns a map of category to percentage value.
func (b *Breakdown) Value() map[string]float64 {
	b.rw.RLock()
	defer b.rw.RUnlock()

	denominator := atomic.LoadInt64(&b.Denominator)
	values := make(map[string]float64)
	for idx, c := range b.Categories {
		if denominator == 0 {
			values[c] = 0
			continue
		}
		values[c] = 100.0 * float64(atomic.LoadInt64(&b.Numerators[idx])) / float64(denominator)
	}
	return values
}

// Count returns the number of hits recorded for the category.
func (b *Breakdown) Count(name string) int64 {
	b.rw.RLock()
	defer b.rw.RUnlock()
	for idx, c := range b.Categories {
		if c == name {
			return atomic.LoadInt64(&b.Numerators[idx])
		}
	}
	return 0
}
