package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tealeg/xlsx"
	"golang.org/x/text/language"

	"github.com/flying-scorpio/i3blocks-contrib/internal/corona"
	"github.com/flying-scorpio/i3blocks-contrib/pkg/coronastats"
)

var tableRecords = []coronastats.Record{
	{Province: "Corsica", Confirmed: 20, Deaths: 2, ConfirmedByDay: []int{25, 20}, DeathsByDay: []int{1, 2}},
	{Province: "", Confirmed: 1000, Deaths: 50, ConfirmedByDay: []int{900, 1000}, DeathsByDay: []int{45, 50}},
	{Province: "Bretagne", Confirmed: 3000, Deaths: 40, ConfirmedByDay: []int{3000}, DeathsByDay: []int{38, 40}},
}

func findLine(t *testing.T, out, substr string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(strings.ToUpper(line), strings.ToUpper(substr)) {
			return line
		}
	}
	t.Fatal("no line with", substr, "in", out)
	return ""
}

func TestWriteTableOrder(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, tableRecords, corona.Locale{})
	out := buf.String()

	bretagne := strings.Index(out, "Bretagne")
	global := strings.Index(out, "Global")
	corsica := strings.Index(out, "Corsica")
	if bretagne < 0 || global < 0 || corsica < 0 {
		t.Fatal(out)
	}
	if !(bretagne < global && global < corsica) {
		t.Fatal("rows are not sorted by confirmed", out)
	}
}

func TestWriteTableFooterSkipsNationalRow(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, tableRecords, corona.Locale{})

	footer := findLine(t, buf.String(), "Regions total")
	if !strings.Contains(footer, " 3020 ") || !strings.Contains(footer, " 42 ") {
		t.Fatal(footer)
	}
	if strings.Contains(footer, "4020") {
		t.Fatal("national aggregate counted in regions total", footer)
	}
}

func TestWriteTableDeltas(t *testing.T) {
	var buf bytes.Buffer
	writeTable(&buf, tableRecords, corona.NewLocale(language.English))
	out := buf.String()

	bretagne := findLine(t, out, "Bretagne")
	if !strings.Contains(bretagne, " 3,000 ") || !strings.Contains(bretagne, " - ") || !strings.Contains(bretagne, " 2 ") {
		t.Fatal(bretagne)
	}
	corsica := findLine(t, out, "Corsica")
	if !strings.Contains(corsica, " -5 ") {
		t.Fatal(corsica)
	}
}

func TestDeltaGrouped(t *testing.T) {
	loc := corona.NewLocale(language.English)
	r := coronastats.Record{ConfirmedByDay: []int{0, 12345}}
	if d := delta(loc, r.TodayConfirmed); d != "12,345" {
		t.Fatal(d)
	}
	if d := delta(loc, r.TodayDeaths); d != "-" {
		t.Fatal(d)
	}
}

func TestWriteToXlsx(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "corsica.xlsx")
	now := time.Date(2021, 3, 1, 12, 0, 0, 0, time.Local)
	r := coronastats.Record{Province: "Corsica", ConfirmedByDay: []int{10, 25, 20}, DeathsByDay: []int{0, 1, 2}}
	if err := writeToXlsx(filename, r, "France", now); err != nil {
		t.Fatal(err)
	}

	f, err := xlsx.OpenFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	sh, found := f.Sheet["Corsica"]
	if !found {
		t.Fatal(f.Sheets)
	}
	if len(sh.Rows) != 4 {
		t.Fatal(len(sh.Rows))
	}
	if h := sh.Rows[0].Cells[1].Value; h != "Confirmed" {
		t.Fatal(h)
	}
	for i, row := range sh.Rows[1:] {
		if len(row.Cells) != 3 {
			t.Fatal(i, len(row.Cells))
		}
		confirmed, err := row.Cells[1].Int()
		if err != nil || confirmed != r.ConfirmedByDay[i] {
			t.Fatal(i, confirmed, err)
		}
		deaths, err := row.Cells[2].Int()
		if err != nil || deaths != r.DeathsByDay[i] {
			t.Fatal(i, deaths, err)
		}
	}
}

func TestWriteToXlsxGlobalSheet(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "france.xlsx")
	r := coronastats.Record{ConfirmedByDay: []int{1, 2}, DeathsByDay: []int{0, 0}}
	if err := writeToXlsx(filename, r, "France", time.Now()); err != nil {
		t.Fatal(err)
	}
	f, err := xlsx.OpenFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, found := f.Sheet["Global"]; !found {
		t.Fatal(f.Sheets)
	}
}
