package corona

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// PlotDates returns n consecutive calendar dates ending at now, oldest first.
func PlotDates(n int, now time.Time) []time.Time {
	dates := make([]time.Time, n)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for i := range dates {
		dates[i] = today.AddDate(0, 0, -(n - 1 - i))
	}
	return dates
}

type plotter struct {
	dir    string
	viewer []string
	run    func(name string, args ...string) error
}

func newPlotter(dir, viewer string) *plotter {
	return &plotter{
		dir:    dir,
		viewer: strings.Fields(viewer),
		run:    runViewer,
	}
}

func runViewer(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func lineChart(series []int, now time.Time, title string) *charts.Line {
	dates := PlotDates(len(series), now)
	xs := make([]string, len(dates))
	for i, d := range dates {
		xs[i] = d.Format(dateLayout)
	}
	points := make([]opts.LineData, len(series))
	for i, v := range series {
		points[i] = opts.LineData{Value: v}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(xs).AddSeries(title, points)
	return line
}

// Plot writes the chart next to the cache and waits for the viewer to exit.
func (p *plotter) Plot(series []int, now time.Time, name, title string) error {
	if len(p.viewer) == 0 {
		return fmt.Errorf("no viewer configured")
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(p.dir, "corona_plot_"+name+".html")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := lineChart(series, now, title).Render(f); err != nil {
		f.Close()
		return fmt.Errorf("could not render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.WithFields(log.Fields{"file": path, "points": len(series)}).Debug("Opening chart")
	args := append(p.viewer[1:len(p.viewer):len(p.viewer)], path)
	return p.run(p.viewer[0], args...)
}
