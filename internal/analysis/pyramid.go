package analysis

import (
	"fmt"
	"sort"
	"strings"
)

// MaleLabel is the sex value plotted on the negative side of an age pyramid.
const MaleLabel = "MASCULINO"

// Band is a half-open age interval [Lower, Upper).
type Band struct {
	Lower int    `json:"lower"`
	Upper int    `json:"upper"`
	Label string `json:"label"`
}

// AgeBands returns consecutive bands of width years covering [0, upper).
func AgeBands(width, upper int) []Band {
	if width <= 0 || upper <= 0 {
		return nil
	}
	var out []Band
	for lo := 0; lo+width <= upper; lo += width {
		out = append(out, Band{Lower: lo, Upper: lo + width, Label: fmt.Sprintf("%d-%d", lo, lo+width-1)})
	}
	return out
}

// DefaultAgeBands are the 5-year bands [0,5) through [80,85).
func DefaultAgeBands() []Band { return AgeBands(5, 85) }

// PyramidRow is the population of one age band and sex.
type PyramidRow struct {
	Band  string `json:"band"`
	Sex   string `json:"sex"`
	Count int    `json:"count"`
	// Signed is -Count for MaleLabel so the two sexes plot on opposite sides.
	Signed int `json:"signed"`
}

// Pyramid counts residents by age band and sex. ages and sexes are parallel columns.
// Rows with an unparsable age, an age outside every band or an empty sex are dropped.
// Every band is listed for every observed sex, zero counts included, bands ascending and
// sexes alphabetical within a band.
func Pyramid(ages, sexes []string, bands []Band) []PyramidRow {
	type key struct {
		band int
		sex  string
	}
	counts := map[key]int{}
	seen := map[string]bool{}
	n := len(ages)
	if len(sexes) < n {
		n = len(sexes)
	}
	for i := 0; i < n; i++ {
		sex := strings.TrimSpace(sexes[i])
		if sex == "" {
			continue
		}
		age, ok := ParseNumber(ages[i])
		if !ok {
			continue
		}
		b := bandOf(bands, age)
		if b < 0 {
			continue
		}
		counts[key{b, sex}]++
		seen[sex] = true
	}
	sexList := make([]string, 0, len(seen))
	for s := range seen {
		sexList = append(sexList, s)
	}
	sort.Strings(sexList)

	out := make([]PyramidRow, 0, len(bands)*len(sexList))
	for bi, b := range bands {
		for _, s := range sexList {
			c := counts[key{bi, s}]
			signed := c
			if strings.EqualFold(s, MaleLabel) {
				signed = -c
			}
			out = append(out, PyramidRow{Band: b.Label, Sex: s, Count: c, Signed: signed})
		}
	}
	return out
}

func bandOf(bands []Band, age float64) int {
	for i, b := range bands {
		if age >= float64(b.Lower) && age < float64(b.Upper) {
			return i
		}
	}
	return -1
}
