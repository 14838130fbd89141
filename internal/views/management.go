package views

import (
	"errors"

	"github.com/KaramelBytes/odpanel/internal/analysis"
	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/session"
)

// ManagementView is survey fieldwork progress and team productivity.
type ManagementView struct {
	DwellingsVisited int                      `json:"dwellings_visited"`
	SurveysCompleted int                      `json:"surveys_completed"`
	TripsRecorded    int                      `json:"trips_recorded"`
	SurveyorRanking  []analysis.CategoryCount `json:"surveyor_ranking"`
	VisitStatus      []analysis.CategoryCount `json:"visit_status"`
	SurveysPerDay    []analysis.DayCount      `json:"surveys_per_day"`
}

// Management computes the fieldwork KPIs from the dwelling table. A missing trip
// table only zeroes the trip count.
func Management(s *session.Session) (v *ManagementView, err error) {
	defer func() { record("management", err) }()
	reg, err := s.Registry()
	if err != nil {
		return nil, err
	}
	dw, err := reg.Require(dataset.KindDwellings, dataset.ColVisitStatus, dataset.ColSurveyorName, dataset.ColSurveyDate)
	if err != nil {
		return nil, err
	}

	v = &ManagementView{DwellingsVisited: dw.Len()}
	completed := dw.Where(dataset.ColVisitStatus, dataset.StatusCompleted)
	v.SurveysCompleted = completed.Len()

	trips, terr := reg.Table(dataset.KindTrips)
	switch {
	case terr == nil:
		v.TripsRecorded = trips.Len()
	case !errors.Is(terr, dataset.ErrTableNotFound):
		return nil, terr
	}

	names, _ := completed.Column(dataset.ColSurveyorName)
	v.SurveyorRanking = analysis.ValueCounts(names)
	status, _ := dw.Column(dataset.ColVisitStatus)
	v.VisitStatus = analysis.ValueCounts(status)
	dates, _ := dw.Column(dataset.ColSurveyDate)
	v.SurveysPerDay = analysis.DailyCounts(dates, analysis.LayoutSurveyDate)
	return v, nil
}
