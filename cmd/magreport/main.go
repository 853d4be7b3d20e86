// Command magreport processes a magnetometer logging session into
// summary statistics, a processed CSV table, PNG plots and, optionally,
// an interactive HTML chart and a SQLite archive row.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/magnetic.report/internal/config"
	"github.com/banshee-data/magnetic.report/internal/geomag"
	"github.com/banshee-data/magnetic.report/internal/ingest"
	"github.com/banshee-data/magnetic.report/internal/magplot"
	"github.com/banshee-data/magnetic.report/internal/monitoring"
	"github.com/banshee-data/magnetic.report/internal/report"
	"github.com/banshee-data/magnetic.report/internal/security"
	"github.com/banshee-data/magnetic.report/internal/series"
	"github.com/banshee-data/magnetic.report/internal/smooth"
	"github.com/banshee-data/magnetic.report/internal/surveydb"
	"github.com/banshee-data/magnetic.report/internal/units"
	"github.com/banshee-data/magnetic.report/internal/version"
)

var (
	inputPath   = flag.String("input", "", "Session file: .xls/.xlsx export or whitespace text log")
	location    = flag.String("location", "", "Location name used in titles and artifact names")
	outDir      = flag.String("out", "out", "Output directory for artifacts")
	configPath  = flag.String("config", "", "Processing config JSON (defaults apply when omitted)")
	htmlChart   = flag.Bool("html", false, "Also render an interactive HTML chart")
	dbPath      = flag.String("db", "", "SQLite session archive (disabled when omitted)")
	fieldUnits  = flag.String("units", "", "Field units for the summary, overriding the config field_units: "+units.GetValidUnitsString())
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("magreport %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}
	if *inputPath == "" {
		log.Fatal("missing required -input flag")
	}

	var cfg *config.ProcessingConfig
	var err error
	if *configPath != "" {
		cfg, err = config.LoadProcessingConfig(*configPath)
	} else {
		cfg, err = config.LoadDefaultProcessingConfig()
	}
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if *fieldUnits == "" {
		*fieldUnits = cfg.GetFieldUnits()
	}
	if !units.IsValid(*fieldUnits) {
		log.Fatalf("invalid -units %q; valid units: %s", *fieldUnits, units.GetValidUnitsString())
	}

	if err := run(cfg); err != nil {
		log.Fatalf("magreport: %v", err)
	}
}

func run(cfg *config.ProcessingConfig) error {
	s, err := ingest.ReadFile(*inputPath)
	if err != nil {
		return err
	}
	monitoring.Logf("Read %d samples from %s", s.Len(), *inputPath)

	derived, err := geomag.DeriveAngles(s)
	if err != nil {
		return err
	}

	params := smooth.Params{
		PolyOrder:  cfg.GetPolyOrder(),
		MinWindow:  cfg.GetMinWindow(),
		MinSamples: cfg.GetMinSamples(),
	}

	plan := smooth.NewPlan(derived.Len(), params)
	if plan.Enabled {
		monitoring.Logf("Smoothing with window %d, polynomial order %d", plan.WindowLength, plan.PolyOrder)
	} else {
		monitoring.Logf("Smoothing disabled for %d samples", derived.Len())
	}

	smoothed, err := smooth.Smooth(derived, params)
	var wse *smooth.WindowSizeError
	if errors.As(err, &wse) {
		// Short sessions just above the smoothing threshold can plan a
		// window longer than the data. Fall back to pass-through rather
		// than dropping the session.
		monitoring.Logf("Smoothing unsatisfiable (%v); continuing with raw values", err)
		plan = smooth.Plan{PolyOrder: plan.PolyOrder}
		params.MinSamples = derived.Len()
		smoothed, err = smooth.Smooth(derived, params)
	}
	if err != nil {
		return err
	}

	summary, err := report.Summarize(smoothed)
	if err != nil {
		return err
	}
	summary.WriteText(os.Stdout, *fieldUnits)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	csvPath := filepath.Join(*outDir, artifactName("magnetic_results", *location, "csv"))
	if err := report.WriteCSVFile(csvPath, smoothed); err != nil {
		return err
	}
	monitoring.Logf("Processed data saved to %s", csvPath)

	plots, err := magplot.Generate(smoothed, magplot.Options{
		OutputDir:    *outDir,
		LocationName: *location,
		Width:        cfg.GetPlotWidthIn(),
		Height:       cfg.GetPlotHeightIn(),
	})
	if err != nil {
		return err
	}
	for _, p := range plots {
		monitoring.Logf("Plot saved to %s", p)
	}

	if *htmlChart {
		htmlPath := filepath.Join(*outDir, artifactName("magnetic_report", *location, "html"))
		if err := report.RenderHTMLFile(htmlPath, smoothed, *location); err != nil {
			return err
		}
		monitoring.Logf("HTML chart saved to %s", htmlPath)
	}

	if *dbPath != "" {
		if err := archive(smoothed, plan, summary); err != nil {
			return err
		}
	}

	return nil
}

func archive(s *series.Series, plan smooth.Plan, summary *report.Summary) error {
	db, err := surveydb.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.InsertSession(surveydb.Session{
		SourceFile:  *inputPath,
		Location:    *location,
		SampleCount: s.Len(),
		Plan:        plan,
		Summary:     *summary,
	})
	if err != nil {
		return err
	}
	monitoring.Logf("Session archived as %s in %s", id, *dbPath)
	return nil
}

func artifactName(prefix, location, ext string) string {
	if location == "" {
		return prefix + "." + ext
	}
	return prefix + "_" + security.SanitizeFilename(location) + "." + ext
}
