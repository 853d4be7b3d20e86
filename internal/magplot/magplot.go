// Package magplot renders the session's PNG plot artifacts with
// gonum/plot: one panel each for dip angle, declination and the raw
// field components, matching the layout of the field team's original
// report figures.
package magplot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/magnetic.report/internal/geomag"
	"github.com/banshee-data/magnetic.report/internal/security"
	"github.com/banshee-data/magnetic.report/internal/series"
	"github.com/banshee-data/magnetic.report/internal/smooth"
)

// Options controls the plot output.
type Options struct {
	// OutputDir receives the PNG files; created if absent.
	OutputDir string
	// LocationName is used in plot titles and file names.
	LocationName string
	// Width and Height of each panel in inches. Zero means the default
	// 12x5 panel.
	Width  float64
	Height float64
}

func (o Options) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 12
	}
	if h <= 0 {
		h = 5
	}
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

var (
	rawDipColor    = color.RGBA{R: 102, G: 204, B: 204, A: 255}
	smoothDipColor = color.RGBA{B: 204, A: 255}
	rawDeclColor   = color.RGBA{R: 204, G: 102, B: 204, A: 255}
	smoothDeclCol  = color.RGBA{R: 204, A: 255}
	bxColor        = color.RGBA{B: 204, A: 255}
	byColor        = color.RGBA{G: 153, A: 255}
	bzColor        = color.RGBA{R: 204, A: 255}
	totalColor     = color.RGBA{A: 255}
)

// Generate writes the three plot panels and returns the created file
// paths. The series must already carry the derived and smoothed
// columns.
func Generate(s *series.Series, o Options) ([]string, error) {
	if err := os.MkdirAll(o.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("magplot: create output dir: %w", err)
	}

	panels := []struct {
		file  string
		title string
		yAxis string
		lines []lineSpec
	}{
		{
			file:  "dip",
			title: "Magnetic Dip Angle over Time",
			yAxis: "Dip Angle (°)",
			lines: []lineSpec{
				{geomag.ColDip, "Raw", rawDipColor, 1},
				{smooth.ColDipSmooth, "Smoothed", smoothDipColor, 2},
			},
		},
		{
			file:  "declination",
			title: "Magnetic Declination over Time",
			yAxis: "Declination (°)",
			lines: []lineSpec{
				{geomag.ColDeclination, "Raw", rawDeclColor, 1},
				{smooth.ColDeclinationSmooth, "Smoothed", smoothDeclCol, 2},
			},
		},
		{
			file:  "components",
			title: "Magnetic Field Components",
			yAxis: "Magnetic Field (µT)",
			lines: []lineSpec{
				{geomag.ColBx, "Bx (North)", bxColor, 1},
				{geomag.ColBy, "By (East)", byColor, 1},
				{smooth.ColBzSmooth, "Bz (Down)", bzColor, 1},
				{geomag.ColAbsoluteField, "Total Field", totalColor, 2},
			},
		},
	}

	var files []string
	for _, panel := range panels {
		path := filepath.Join(o.OutputDir, outputName(panel.file, o.LocationName))
		if err := renderPanel(s, panel.title, o.LocationName, panel.yAxis, panel.lines, path, o); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

type lineSpec struct {
	column string
	label  string
	color  color.Color
	width  int
}

func renderPanel(s *series.Series, title, location, yAxis string, lines []lineSpec, path string, o Options) error {
	p := plot.New()
	if location != "" {
		title = title + " - " + location
	}
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = yAxis
	p.Add(plotter.NewGrid())

	timeCol, err := s.Column(geomag.ColTime)
	if err != nil {
		return fmt.Errorf("magplot: %w", err)
	}

	for _, spec := range lines {
		col, err := s.Column(spec.column)
		if err != nil {
			return fmt.Errorf("magplot: %w", err)
		}

		pts := make(plotter.XYs, 0, len(col))
		for i, v := range col {
			// Missing cells in either axis become gaps, not zeros.
			if !v.Valid || !timeCol[i].Valid {
				continue
			}
			pts = append(pts, plotter.XY{X: timeCol[i].V, Y: v.V})
		}
		if len(pts) == 0 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("magplot: line for %s: %w", spec.column, err)
		}
		line.Color = spec.color
		line.Width = vg.Points(float64(spec.width))
		p.Add(line)
		p.Legend.Add(spec.label, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = 10

	w, h := o.size()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("magplot: save %s: %w", path, err)
	}
	return nil
}

// outputName builds a file name like "magnetic_dip_Location_1.png".
// The location is operator input, so it is sanitized before use.
func outputName(panel, location string) string {
	if location == "" {
		return fmt.Sprintf("magnetic_%s.png", panel)
	}
	return fmt.Sprintf("magnetic_%s_%s.png", panel, security.SanitizeFilename(location))
}
