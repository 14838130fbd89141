package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/labels"
)

// CategoryCount is one row of a value-count table.
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueCounts counts trimmed non-empty values, most frequent first; ties sort by value.
func ValueCounts(values []string) []CategoryCount {
	counts := map[string]int{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		counts[v]++
	}
	return sortCounts(counts)
}

// MapCounts labels coded cells through lookup and counts the labels.
// Empty and non-integer cells are dropped; unmapped codes keep the lookup's fallback label.
func MapCounts(codes []string, lookup labels.Lookup) []CategoryCount {
	counts := map[string]int{}
	for _, v := range codes {
		code, ok := dataset.ParseCode(v)
		if !ok {
			continue
		}
		counts[lookup.Label(code)]++
	}
	return sortCounts(counts)
}

func sortCounts(counts map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// TopN keeps the first n counts; n <= 0 keeps everything.
func TopN(counts []CategoryCount, n int) []CategoryCount {
	if n <= 0 || len(counts) <= n {
		return counts
	}
	return counts[:n]
}

// Total sums the counts.
func Total(counts []CategoryCount) int {
	n := 0
	for _, c := range counts {
		n += c.Count
	}
	return n
}

// DayCount is one point of a daily series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailyCounts buckets timestamps by calendar day. The series runs from the first to the
// last observed day with missing days filled with zero; unparsable timestamps are dropped.
func DailyCounts(values []string, layout string) []DayCount {
	counts := map[time.Time]int{}
	var first, last time.Time
	for _, v := range values {
		t, ok := parseTime(v, layout)
		if !ok {
			continue
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if len(counts) == 0 || day.Before(first) {
			first = day
		}
		if len(counts) == 0 || day.After(last) {
			last = day
		}
		counts[day]++
	}
	if len(counts) == 0 {
		return nil
	}
	var out []DayCount
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, DayCount{Date: d.Format("2006-01-02"), Count: counts[d]})
	}
	return out
}

// HourCount is the number of events starting in one hour of the day.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// HourCounts counts times of day by hour, ascending; only observed hours are listed.
func HourCounts(values []string, layout string) []HourCount {
	counts := map[int]int{}
	for _, v := range values {
		t, ok := parseTime(v, layout)
		if !ok {
			continue
		}
		counts[t.Hour()]++
	}
	out := make([]HourCount, 0, len(counts))
	for h, n := range counts {
		out = append(out, HourCount{Hour: h, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}
