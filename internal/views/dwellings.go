package views

import (
	"github.com/KaramelBytes/odpanel/internal/analysis"
	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/session"
)

// DwellingsView is the household infrastructure page, over completed surveys only.
type DwellingsView struct {
	Completed     int                      `json:"completed"`
	Types         []analysis.CategoryCount `json:"dwelling_types"`
	Cities        []analysis.CategoryCount `json:"cities"`
	WithVehicle   int                      `json:"with_vehicle"`
	WithInternet  int                      `json:"with_internet"`
	MeanResidents *float64                 `json:"mean_residents"`
	FamilyIncome  []analysis.Bin           `json:"family_income_histogram"`
}

// Dwellings computes household statistics for completed surveys.
func Dwellings(s *session.Session, set Settings) (v *DwellingsView, err error) {
	defer func() { record("dwellings", err) }()
	set = set.withDefaults()
	reg, err := s.Registry()
	if err != nil {
		return nil, err
	}
	t, err := reg.Require(dataset.KindDwellings,
		dataset.ColVisitStatus, dataset.ColDwellingType, dataset.ColResidenceCity,
		dataset.ColHasVehicle, dataset.ColHasInternet, dataset.ColResidents, dataset.ColFamilyIncome)
	if err != nil {
		return nil, err
	}
	done := t.Where(dataset.ColVisitStatus, dataset.StatusCompleted)

	v = &DwellingsView{Completed: done.Len()}
	types, _ := done.Column(dataset.ColDwellingType)
	v.Types = analysis.ValueCounts(types)
	cities, _ := done.Column(dataset.ColResidenceCity)
	v.Cities = analysis.ValueCounts(cities)
	vehicle, _ := done.Column(dataset.ColHasVehicle)
	v.WithVehicle = analysis.SumFlags(vehicle)
	internet, _ := done.Column(dataset.ColHasInternet)
	v.WithInternet = analysis.SumFlags(internet)
	residents, _ := done.Column(dataset.ColResidents)
	if m, ok := analysis.Mean(analysis.Numbers(residents)); ok {
		v.MeanResidents = &m
	}
	income, _ := done.Column(dataset.ColFamilyIncome)
	v.FamilyIncome = analysis.Histogram(analysis.PositiveNumbers(income), set.HistogramBins)
	return v, nil
}
