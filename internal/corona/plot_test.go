package corona

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPlotDates(t *testing.T) {
	now := time.Date(2021, 3, 1, 18, 30, 0, 0, time.UTC)
	dates := PlotDates(3, now)
	want := []string{"2021-02-27", "2021-02-28", "2021-03-01"}
	if len(dates) != len(want) {
		t.Fatal(dates)
	}
	for i, d := range dates {
		if d.Format(dateLayout) != want[i] {
			t.Fatal(i, d, want[i])
		}
	}
}

func TestPlot(t *testing.T) {
	dir := t.TempDir()
	p := newPlotter(dir, "viewer --flag")
	var gotName string
	var gotArgs []string
	p.run = func(name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	}

	now := time.Date(2021, 3, 1, 9, 0, 0, 0, time.Local)
	if err := p.Plot([]int{900, 1000}, now, "France", "COVID-19 confirmed cases in France"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "corona_plot_France.html")
	if gotName != "viewer" || len(gotArgs) != 2 || gotArgs[0] != "--flag" || gotArgs[1] != path {
		t.Fatal(gotName, gotArgs)
	}
	html, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"2021-02-28", "2021-03-01", "COVID-19 confirmed cases in France"} {
		if !strings.Contains(string(html), s) {
			t.Fatal("chart does not contain", s)
		}
	}
}

func TestPlotNoViewer(t *testing.T) {
	p := newPlotter(t.TempDir(), "  ")
	if err := p.Plot([]int{1, 2}, time.Now(), "France", "t"); err == nil {
		t.Fatal("plot without viewer succeeded")
	}
}
