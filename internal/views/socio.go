package views

import (
	"github.com/KaramelBytes/odpanel/internal/analysis"
	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/session"
)

// SocioView is the socioeconomic page.
type SocioView struct {
	Residents int                      `json:"residents"`
	Education []analysis.CategoryCount `json:"education"`
	Situation []analysis.CategoryCount `json:"situation"`
	Pyramid   []analysis.PyramidRow    `json:"age_pyramid"`
	Income    []analysis.Bin           `json:"income_histogram"`
}

// Socio computes resident demographics and individual income.
func Socio(s *session.Session, set Settings) (v *SocioView, err error) {
	defer func() { record("socio", err) }()
	set = set.withDefaults()
	reg, err := s.Registry()
	if err != nil {
		return nil, err
	}
	t, err := reg.Require(dataset.KindSocio,
		dataset.ColEducation, dataset.ColSituation, dataset.ColAge, dataset.ColSex, dataset.ColIncome)
	if err != nil {
		return nil, err
	}

	v = &SocioView{Residents: t.Len()}
	edu, _ := t.Column(dataset.ColEducation)
	v.Education = analysis.ValueCounts(edu)
	sit, _ := t.Column(dataset.ColSituation)
	v.Situation = analysis.ValueCounts(sit)
	ages, _ := t.Column(dataset.ColAge)
	sexes, _ := t.Column(dataset.ColSex)
	v.Pyramid = analysis.Pyramid(ages, sexes, analysis.DefaultAgeBands())
	income, _ := t.Column(dataset.ColIncome)
	v.Income = analysis.Histogram(analysis.PositiveNumbers(income), set.HistogramBins)
	return v, nil
}
