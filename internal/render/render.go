// Package render prints dashboard views as terminal tables.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/KaramelBytes/odpanel/internal/analysis"
	"github.com/KaramelBytes/odpanel/internal/labels"
	"github.com/KaramelBytes/odpanel/internal/odmatrix"
	"github.com/KaramelBytes/odpanel/internal/views"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetAutoFormatHeaders(false)
	t.SetHeader(header)
	return t
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
}

// Counts prints category counts with their share of the total.
func Counts(w io.Writer, title string, counts []analysis.CategoryCount) {
	section(w, title)
	if len(counts) == 0 {
		fmt.Fprintln(w, "(no data)")
		return
	}
	total := analysis.Total(counts)
	t := newTable(w, "Value", "Count", "Share")
	for _, c := range counts {
		t.Append([]string{c.Value, strconv.Itoa(c.Count), fmt.Sprintf("%.1f%%", 100*float64(c.Count)/float64(total))})
	}
	t.Render()
}

// KPIs prints name/value pairs as a two-column table.
func KPIs(w io.Writer, title string, pairs [][2]string) {
	section(w, title)
	t := newTable(w, "Indicator", "Value")
	for _, p := range pairs {
		t.Append([]string{p[0], p[1]})
	}
	t.Render()
}

// Matrix prints an OD matrix with origins as rows and destinations as columns.
func Matrix(w io.Writer, m *odmatrix.LabeledMatrix) {
	section(w, "Origin-destination matrix")
	header := append([]string{"Origin \\ Destination"}, m.Cols...)
	t := newTable(w, header...)
	for i, row := range m.Values {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, m.Rows[i])
		for _, n := range row {
			cells = append(cells, strconv.Itoa(n))
		}
		t.Append(cells)
	}
	t.Render()
	fmt.Fprintf(w, "Total trips between selected cities: %d\n", m.Total)
}

// Days prints a daily series.
func Days(w io.Writer, title string, days []analysis.DayCount) {
	section(w, title)
	if len(days) == 0 {
		fmt.Fprintln(w, "(no data)")
		return
	}
	t := newTable(w, "Date", "Count")
	for _, d := range days {
		t.Append([]string{d.Date, strconv.Itoa(d.Count)})
	}
	t.Render()
}

// Hours prints departures per hour of day.
func Hours(w io.Writer, title string, hours []analysis.HourCount) {
	section(w, title)
	if len(hours) == 0 {
		fmt.Fprintln(w, "(no data)")
		return
	}
	t := newTable(w, "Hour", "Count")
	for _, h := range hours {
		t.Append([]string{fmt.Sprintf("%02d:00", h.Hour), strconv.Itoa(h.Count)})
	}
	t.Render()
}

// Bins prints a histogram.
func Bins(w io.Writer, title string, bins []analysis.Bin) {
	section(w, title)
	if len(bins) == 0 {
		fmt.Fprintln(w, "(no data)")
		return
	}
	t := newTable(w, "From", "To", "Count")
	for _, b := range bins {
		t.Append([]string{formatFloat(b.Lower), formatFloat(b.Upper), strconv.Itoa(b.Count)})
	}
	t.Render()
}

// Pyramid prints the age pyramid with one column per sex.
func Pyramid(w io.Writer, rows []analysis.PyramidRow) {
	section(w, "Age pyramid")
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no data)")
		return
	}
	var bands, sexes []string
	seenBand := map[string]bool{}
	seenSex := map[string]bool{}
	counts := map[[2]string]int{}
	for _, r := range rows {
		if !seenBand[r.Band] {
			seenBand[r.Band] = true
			bands = append(bands, r.Band)
		}
		if !seenSex[r.Sex] {
			seenSex[r.Sex] = true
			sexes = append(sexes, r.Sex)
		}
		counts[[2]string{r.Band, r.Sex}] = r.Count
	}
	t := newTable(w, append([]string{"Age"}, sexes...)...)
	for _, b := range bands {
		cells := []string{b}
		for _, s := range sexes {
			cells = append(cells, strconv.Itoa(counts[[2]string{b, s}]))
		}
		t.Append(cells)
	}
	t.Render()
}

// Options prints a code/label list.
func Options(w io.Writer, title string, opts []labels.Option) {
	section(w, title)
	t := newTable(w, "Code", "Label")
	for _, o := range opts {
		t.Append([]string{strconv.Itoa(o.Code), o.Label})
	}
	t.Render()
}

// Home prints the loaded tables.
func Home(w io.Writer, v views.HomeView) {
	if !v.Loaded {
		fmt.Fprintf(w, "No data loaded: %s\n", v.Error)
		return
	}
	section(w, "Loaded tables")
	if !v.LoadedAt.IsZero() {
		fmt.Fprintf(w, "Loaded at %s\n", v.LoadedAt.Format("2006-01-02 15:04:05"))
	}
	t := newTable(w, "Table", "Kind", "Rows", "Columns", "Skipped lines")
	for _, ti := range v.Tables {
		t.Append([]string{ti.Name, ti.Kind, strconv.Itoa(ti.Rows), strconv.Itoa(ti.Columns), strconv.Itoa(ti.Skipped)})
	}
	t.Render()
}

// Management prints the fieldwork page.
func Management(w io.Writer, v *views.ManagementView) {
	KPIs(w, "Fieldwork", [][2]string{
		{"Dwellings visited", strconv.Itoa(v.DwellingsVisited)},
		{"Surveys completed", strconv.Itoa(v.SurveysCompleted)},
		{"Trips recorded", strconv.Itoa(v.TripsRecorded)},
	})
	Counts(w, "Completed surveys per surveyor", v.SurveyorRanking)
	Counts(w, "Visit status", v.VisitStatus)
	Days(w, "Surveys per day", v.SurveysPerDay)
}

// Trips prints the mobility page.
func Trips(w io.Writer, v *views.TripsView) {
	KPIs(w, "Mobility", [][2]string{{"Valid trips", strconv.Itoa(v.ValidTrips)}})
	if v.Matrix != nil {
		Matrix(w, v.Matrix)
	} else {
		fmt.Fprintf(w, "\n⚠ %s\n", v.Prompt)
	}
	Counts(w, "Modal split", v.ModalSplit)
	Counts(w, "Trip motives", v.Motives)
	Hours(w, "Departures by hour", v.DeparturesByHour)
}

// Socio prints the socioeconomic page.
func Socio(w io.Writer, v *views.SocioView) {
	KPIs(w, "Residents", [][2]string{{"Residents", strconv.Itoa(v.Residents)}})
	Counts(w, "Education", v.Education)
	Counts(w, "Household situation", v.Situation)
	Pyramid(w, v.Pyramid)
	Bins(w, "Monthly income", v.Income)
}

// Dwellings prints the household page.
func Dwellings(w io.Writer, v *views.DwellingsView) {
	mean := "n/a"
	if v.MeanResidents != nil {
		mean = fmt.Sprintf("%.2f", *v.MeanResidents)
	}
	KPIs(w, "Households", [][2]string{
		{"Completed surveys", strconv.Itoa(v.Completed)},
		{"With vehicle", strconv.Itoa(v.WithVehicle)},
		{"With internet", strconv.Itoa(v.WithInternet)},
		{"Mean residents", mean},
	})
	Counts(w, "Dwelling types", v.Types)
	Counts(w, "Residence cities", v.Cities)
	Bins(w, "Family income", v.FamilyIncome)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
