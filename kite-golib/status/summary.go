package status

import (
	"fmt"
	"sort"
	"strings"
	"time"

	humanize "github.com/dustin/go-humanize"
)

// Summary renders the section as text, one metric per line, sorted by name
// with headline metrics first.
func (s *Section) Summary() string {
	s.m.Lock()
	defer s.m.Unlock()

	type line struct {
		headline bool
		name     string
		text     string
	}
	var lines []line

	for name, c := range s.Counters {
		lines = append(lines, line{c.Headline, name, humanize.Comma(c.GetValue())})
	}
	for name, r := range s.Ratios {
		lines = append(lines, line{r.Headline, name, fmt.Sprintf("%.1f%%", r.Value())})
	}
	for name, b := range s.Breakdowns {
		var parts []string
		for cat, v := range b.Value() {
			parts = append(parts, fmt.Sprintf("%s=%.1f%%", cat, v))
		}
		sort.Strings(parts)
		lines = append(lines, line{b.Headline, name, strings.Join(parts, " ")})
	}
	for name, v := range s.SampleInt64s {
		lines = append(lines, line{v.Headline, name, percentiles(v.sampler, func(x int64) string {
			return humanize.Comma(x)
		})})
	}
	for name, v := range s.SampleBytes {
		lines = append(lines, line{v.Headline, name, percentiles(v.sampler, func(x int64) string {
			return humanize.Bytes(uint64(x))
		})})
	}
	for name, v := range s.SampleDurations {
		lines = append(lines, line{v.Headline, name, percentiles(v.sampler, func(x int64) string {
			return time.Duration(x).String()
		})})
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].headline != lines[j].headline {
			return lines[i].headline
		}
		return lines[i].name < lines[j].name
	})

	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%s.%s: %s\n", s.Name, l.name, l.text)
	}
	return b.String()
}

func percentiles(s *sampler, format func(int64) string) string {
	parts := []string{fmt.Sprintf("n=%s", humanize.Comma(s.Count()))}
	for i, v := range s.Values() {
		parts = append(parts, fmt.Sprintf("p%d=%s", int(samplePercentiles[i]*100), format(v)))
	}
	return strings.Join(parts, " ")
}
