// Package views computes the data behind each dashboard page. Every function reads the
// registry of one session, works on copies of the tables it needs and never mutates
// shared state.
package views

import (
	"errors"

	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/labels"
	"github.com/KaramelBytes/odpanel/internal/metrics"
	"github.com/KaramelBytes/odpanel/internal/session"
)

// Settings are the tunables shared by all views.
type Settings struct {
	// InvalidSurveyorID marks trip rows recorded without a surveyor; they are excluded.
	InvalidSurveyorID int
	// DefaultCities is how many location codes the OD matrix selects when the query names none.
	DefaultCities int
	// HistogramBins is the bin count of income histograms.
	HistogramBins int
	Modes         labels.Lookup
	Motives       labels.Lookup
}

// DefaultSettings uses the built-in mode and motive maps.
func DefaultSettings() Settings {
	return Settings{
		InvalidSurveyorID: 0,
		DefaultCities:     10,
		HistogramBins:     30,
		Modes:             labels.Static(labels.DefaultModes, labels.OtherID),
		Motives:           labels.Static(labels.DefaultMotives, labels.OtherID),
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.DefaultCities <= 0 {
		s.DefaultCities = d.DefaultCities
	}
	if s.HistogramBins <= 0 {
		s.HistogramBins = d.HistogramBins
	}
	if s.Modes == nil {
		s.Modes = d.Modes
	}
	if s.Motives == nil {
		s.Motives = d.Motives
	}
	return s
}

// Outcome classifies a view error for metrics and HTTP status mapping.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, session.ErrNotLoaded):
		return "not_loaded"
	case errors.Is(err, dataset.ErrTableNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func record(view string, err error) {
	metrics.RecordView(view, Outcome(err))
}
