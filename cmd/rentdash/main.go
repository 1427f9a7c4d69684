package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"rentdash/config"
	"rentdash/internal/dataset"
	"rentdash/internal/models"
	"rentdash/internal/presentation"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var file, city, out, format, snapshot string
	var rows int
	flag.StringVar(&file, "file", cfg.Data.Path, "Path to the dataset (CSV or SQLite snapshot)")
	flag.StringVar(&city, "city", models.AllCitiesSelection, "City to show, or Todas for every city")
	flag.StringVar(&out, "out", "", "Optional directory to write one PNG per chart")
	flag.StringVar(&format, "format", "text", "Output format: text or json")
	flag.StringVar(&snapshot, "snapshot", "", "Optional path to write the dataset as a SQLite snapshot")
	flag.IntVar(&rows, "rows", 10, "Table rows to print in text mode")
	flag.Parse()

	logger := cfg.NewLogger()
	logger.SetOutput(os.Stderr)

	ds, err := dataset.Open(file)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load dataset")
	}

	if snapshot != "" {
		if err := dataset.WriteSnapshot(snapshot, ds); err != nil {
			logger.WithError(err).Fatal("Failed to write snapshot")
		}
		logger.WithFields(logrus.Fields{"path": snapshot, "records": ds.Len()}).Info("Snapshot written")
	}

	criterion := models.NewFilterCriterion(city)
	dashboard, err := presentation.Build(ds, criterion, 0)
	if err != nil {
		logger.WithError(err).Fatal("Failed to build dashboard")
	}

	if out != "" {
		renderer := presentation.NewRenderer(cfg.Chart.Width, cfg.Chart.Height)
		if err := writeCharts(renderer, dashboard, out, logger); err != nil {
			logger.WithError(err).Fatal("Failed to write charts")
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(dashboard)
	case "text":
		err = printText(os.Stdout, dashboard, rows)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		logger.WithError(err).Fatal("Failed to write output")
	}
}

// chartFileName names a chart image after the chart and the selected city,
// e.g. rent-by-city-são-paulo.png.
func chartFileName(id, city string) string {
	return id + "-" + config.NormalizeCity(city) + ".png"
}

func writeCharts(renderer *presentation.Renderer, d *presentation.Dashboard, dir string, logger *logrus.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	for _, c := range d.Charts {
		path := filepath.Join(dir, chartFileName(c.ID, d.Selected))
		if err := writeChart(renderer, c, path); err != nil {
			if errors.Is(err, presentation.ErrEmptyChart) {
				logger.WithField("chart", c.ID).Warn(presentation.NoDataMessage)
				continue
			}
			return err
		}
		logger.WithField("path", path).Debug("Chart written")
	}
	return nil
}

func writeChart(renderer *presentation.Renderer, c presentation.Chart, path string) error {
	if c.IsEmpty() {
		return presentation.ErrEmptyChart
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := renderer.RenderPNG(c, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func printText(w io.Writer, d *presentation.Dashboard, rows int) error {
	fmt.Fprintf(w, "%s (%s)\n", d.Title, d.Selected)
	for _, sub := range d.Subtitles {
		fmt.Fprintf(w, "%s\n", sub)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, d.SummaryHeader)
	for _, line := range d.SummaryLines {
		fmt.Fprintf(w, "  - %s\n", line)
	}

	for _, c := range d.Charts {
		fmt.Fprintf(w, "\n%s\n", c.Title)
		if c.IsEmpty() {
			fmt.Fprintf(w, "  %s\n", presentation.NoDataMessage)
			continue
		}
		for _, b := range c.Bars {
			fmt.Fprintf(w, "  %-24s %s\n", b.Label, presentation.Money(b.Value))
		}
		for _, b := range c.Boxes {
			fmt.Fprintf(w, "  %-24s min %s  q1 %s  median %s  q3 %s  max %s\n", b.Key,
				presentation.Money(b.Min), presentation.Money(b.Q1), presentation.Money(b.Median),
				presentation.Money(b.Q3), presentation.Money(b.Max))
		}
		if len(c.Points) > 0 {
			fmt.Fprintf(w, "  %d pontos\n", len(c.Points))
		}
	}

	fmt.Fprintf(w, "\n%s (%d de %d)\n", d.TableHeader, min(rows, d.Table.Total), d.Table.Total)
	for i, row := range d.Table.Rows {
		if i >= rows {
			break
		}
		fmt.Fprintln(w, formatRow(row))
	}
	return nil
}

func formatRow(row []any) string {
	s := ""
	for i, v := range row {
		if i > 0 {
			s += " | "
		}
		if v == nil {
			s += "-"
			continue
		}
		s += fmt.Sprint(v)
	}
	return s
}
