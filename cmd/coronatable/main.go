package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/table"
	log "github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"

	"github.com/flying-scorpio/i3blocks-contrib/internal/corona"
	"github.com/flying-scorpio/i3blocks-contrib/pkg/coronastats"
)

var (
	cfgFilename = flag.String("config", "", "path to corona.cfg (default ~/.config/corona/corona.cfg if present)")
	xlsxName    = flag.String("xlsx", "", "also write per-day series of the selected province to this xlsx file")
)

func main() {
	flag.Parse()

	if err := run(context.Background()); err != nil {
		fmt.Printf("could not get result; error: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	opts, err := corona.LoadOptions(*cfgFilename)
	if err != nil {
		return err
	}
	app, err := corona.NewApp(opts)
	if err != nil {
		return err
	}
	records, err := app.Records(ctx)
	if err != nil {
		return err
	}

	writeTable(os.Stdout, records, opts.Locale)

	if *xlsxName == "" {
		return nil
	}
	r, err := coronastats.Select(records, opts.Province)
	if err != nil {
		return err
	}
	return writeToXlsx(*xlsxName, r, opts.Country, time.Now())
}

func provinceName(p string) string {
	if p == "" {
		return coronastats.Global
	}
	return p
}

func delta(loc corona.Locale, f func() (int, error)) string {
	d, err := f()
	if err != nil {
		return "-"
	}
	return loc.Int(d)
}

func writeTable(w io.Writer, records []coronastats.Record, loc corona.Locale) {
	sorted := make([]coronastats.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confirmed > sorted[j].Confirmed
	})

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Province", "Confirmed", "Today", "Deaths", "Today"})
	var confirmed, deaths int
	for _, r := range sorted {
		t.AppendRow(table.Row{provinceName(r.Province), loc.Int(r.Confirmed), delta(loc, r.TodayConfirmed),
			loc.Int(r.Deaths), delta(loc, r.TodayDeaths)})
		if r.Province != "" {
			confirmed += r.Confirmed
			deaths += r.Deaths
		}
	}
	t.AppendFooter(table.Row{"Regions total", loc.Int(confirmed), "", loc.Int(deaths), ""})
	t.Render()
}

func writeToXlsx(filename string, r coronastats.Record, country string, now time.Time) error {
	xls := xlsx.NewFile()
	sh, err := xls.AddSheet(provinceName(r.Province))
	if err != nil {
		return err
	}

	header := sh.AddRow()
	for _, h := range []string{"Date", "Confirmed", "Deaths"} {
		header.AddCell().SetString(h)
	}

	dates := corona.PlotDates(len(r.ConfirmedByDay), now)
	for i, d := range dates {
		row := sh.AddRow()
		row.AddCell().SetDate(d)
		row.AddCell().SetInt(r.ConfirmedByDay[i])
		if i < len(r.DeathsByDay) {
			row.AddCell().SetInt(r.DeathsByDay[i])
		}
	}

	log.WithFields(log.Fields{"file": filename, "country": country, "days": len(dates)}).Info("Writing xlsx")
	return xls.Save(filename)
}
