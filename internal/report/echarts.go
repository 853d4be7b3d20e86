package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/magnetic.report/internal/geomag"
	"github.com/banshee-data/magnetic.report/internal/series"
	"github.com/banshee-data/magnetic.report/internal/smooth"
)

// RenderHTML writes an interactive chart page for the session: raw vs
// smoothed dip and declination, plus the field components. Missing
// cells become gaps in the lines rather than zeros.
func RenderHTML(w io.Writer, s *series.Series, locationName string) error {
	timeCol, err := s.Column(geomag.ColTime)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	xLabels := make([]string, len(timeCol))
	for i, v := range timeCol {
		if v.Valid {
			xLabels[i] = strconv.FormatFloat(v.V, 'f', 3, 64)
		}
	}

	angles := charts.NewLine()
	angles.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Magnetic Survey " + locationName,
			Width:     "1200px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Dip and Declination over Time",
			Subtitle: locationName,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Angle (°)"}),
	)
	angles.SetXAxis(xLabels)
	for _, col := range []struct {
		name, label string
	}{
		{geomag.ColDip, "Dip (raw)"},
		{smooth.ColDipSmooth, "Dip (smoothed)"},
		{geomag.ColDeclination, "Declination (raw)"},
		{smooth.ColDeclinationSmooth, "Declination (smoothed)"},
	} {
		data, err := lineData(s, col.name)
		if err != nil {
			return err
		}
		angles.AddSeries(col.label, data)
	}

	field := charts.NewLine()
	field.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1200px",
			Height: "500px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Magnetic Field Components"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Field (µT)"}),
	)
	field.SetXAxis(xLabels)
	for _, col := range []struct {
		name, label string
	}{
		{geomag.ColBx, "Bx (north)"},
		{geomag.ColBy, "By (east)"},
		{smooth.ColBzSmooth, "Bz (down, smoothed)"},
		{geomag.ColAbsoluteField, "Total field"},
	} {
		data, err := lineData(s, col.name)
		if err != nil {
			return err
		}
		field.AddSeries(col.label, data)
	}

	page := components.NewPage()
	page.AddCharts(angles, field)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("report: render html chart: %w", err)
	}
	return nil
}

// RenderHTMLFile writes the chart page to path.
func RenderHTMLFile(path string, s *series.Series, locationName string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	if err := RenderHTML(f, s, locationName); err != nil {
		return err
	}
	return f.Close()
}

func lineData(s *series.Series, name string) ([]opts.LineData, error) {
	col, err := s.Column(name)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	data := make([]opts.LineData, len(col))
	for i, v := range col {
		if v.Valid {
			data[i] = opts.LineData{Value: v.V}
		} else {
			data[i] = opts.LineData{Value: nil}
		}
	}
	return data, nil
}
