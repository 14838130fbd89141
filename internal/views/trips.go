package views

import (
	"github.com/KaramelBytes/odpanel/internal/analysis"
	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/labels"
	"github.com/KaramelBytes/odpanel/internal/odmatrix"
	"github.com/KaramelBytes/odpanel/internal/session"
)

// SelectionPrompt is shown instead of the OD matrix when no city is selected.
const SelectionPrompt = "Select at least one city for the origin-destination matrix."

// TripsQuery is the city selection of the OD matrix. A nil Cities slice selects the
// default cities; an empty non-nil slice is an explicit empty selection.
type TripsQuery struct {
	Cities []int
}

// TripsView is the mobility page: OD matrix, modal split, motives and departure peaks.
type TripsView struct {
	ValidTrips       int                      `json:"valid_trips"`
	CityOptions      []labels.Option          `json:"city_options"`
	Selected         []int                    `json:"selected"`
	Matrix           *odmatrix.LabeledMatrix  `json:"matrix,omitempty"`
	Prompt           string                   `json:"prompt,omitempty"`
	ModalSplit       []analysis.CategoryCount `json:"modal_split"`
	Motives          []analysis.CategoryCount `json:"motives"`
	DeparturesByHour []analysis.HourCount     `json:"departures_by_hour"`
}

var tripColumns = []string{
	dataset.ColOriginCity, dataset.ColOriginCityLabel, dataset.ColDestCity,
	dataset.ColSurveyorID, dataset.ColMode, dataset.ColOriginMotive, dataset.ColDepartureTime,
}

// ValidTrips returns the trip table without rows recorded under the invalid surveyor id.
// Rows whose surveyor id does not parse are kept.
func ValidTrips(reg *dataset.Registry, invalidSurveyorID int) (*dataset.Table, error) {
	trips, err := reg.Require(dataset.KindTrips, tripColumns...)
	if err != nil {
		return nil, err
	}
	idx, _ := trips.ColumnIndex(dataset.ColSurveyorID)
	return trips.Filter(func(_ int, row []string) bool {
		id, ok := dataset.ParseCode(row[idx])
		return !ok || id != invalidSurveyorID
	}), nil
}

// CityLabels derives the location label map from the session's valid trips.
func CityLabels(s *session.Session, set Settings) (*labels.Labels, error) {
	reg, err := s.Registry()
	if err != nil {
		return nil, err
	}
	trips, err := ValidTrips(reg, set.InvalidSurveyorID)
	if err != nil {
		return nil, err
	}
	return labels.FromTrips(trips), nil
}

// Trips computes the mobility page for the given city selection.
func Trips(s *session.Session, set Settings, q TripsQuery) (v *TripsView, err error) {
	defer func() { record("trips", err) }()
	set = set.withDefaults()
	reg, err := s.Registry()
	if err != nil {
		return nil, err
	}
	trips, err := ValidTrips(reg, set.InvalidSurveyorID)
	if err != nil {
		return nil, err
	}
	cities := labels.FromTrips(trips)

	v = &TripsView{ValidTrips: trips.Len(), CityOptions: cities.Options()}
	v.Selected = q.Cities
	if v.Selected == nil {
		codes := cities.Codes()
		if len(codes) > set.DefaultCities {
			codes = codes[:set.DefaultCities]
		}
		v.Selected = codes
	}
	if len(v.Selected) == 0 {
		v.Selected = []int{}
		v.Prompt = SelectionPrompt
	} else {
		m, err := odmatrix.Build(trips, v.Selected)
		if err != nil {
			return nil, err
		}
		lm := m.Labeled(cities)
		v.Matrix = &lm
	}

	modes, _ := trips.Column(dataset.ColMode)
	v.ModalSplit = analysis.MapCounts(modes, set.Modes)
	motives, _ := trips.Column(dataset.ColOriginMotive)
	v.Motives = analysis.MapCounts(motives, set.Motives)
	times, _ := trips.Column(dataset.ColDepartureTime)
	v.DeparturesByHour = analysis.HourCounts(times, analysis.LayoutDeparture)
	return v, nil
}
