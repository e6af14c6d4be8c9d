package coronastats

import (
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// Global selects the nationwide aggregate record.
const Global = "Global"

var ErrShortSeries = errors.New("day series has fewer than 2 entries")

// Record is the per-region block of the corona-stats payload.
type Record struct {
	Province       string `json:"province"`
	Confirmed      int    `json:"confirmed"`
	Deaths         int    `json:"deaths"`
	ConfirmedByDay []int  `json:"confirmedByDay"`
	DeathsByDay    []int  `json:"deathsByDay"`
}

func lastDelta(series []int) (int, error) {
	n := len(series)
	if n < 2 {
		return 0, ErrShortSeries
	}
	return series[n-1] - series[n-2], nil
}

// TodayConfirmed is the difference between the two most recent confirmed values.
func (r Record) TodayConfirmed() (int, error) {
	return lastDelta(r.ConfirmedByDay)
}

// TodayDeaths is the difference between the two most recent deaths values.
func (r Record) TodayDeaths() (int, error) {
	return lastDelta(r.DeathsByDay)
}

// ParseResult tells parsed records apart from content that is not a JSON array
// of records. Invalid content is expected after a broken download and means
// the caller should refetch.
type ParseResult struct {
	Records []Record
	Valid   bool
}

func Parse(text string) ParseResult {
	var records []Record
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		debugw("Cached content is not valid", "err", err, "size", len(text))
		return ParseResult{}
	}
	if records == nil {
		records = []Record{}
	}
	return ParseResult{Records: records, Valid: true}
}

type RegionNotFoundError struct {
	Province string
}

func (e *RegionNotFoundError) Error() string {
	return fmt.Sprintf("province %q not found", e.Province)
}

// Select returns the first record with exactly the given province.
// Global is mapped to the empty province of the national aggregate.
func Select(records []Record, province string) (Record, error) {
	key := province
	if key == Global {
		key = ""
	}
	i := slices.IndexFunc(records, func(r Record) bool { return r.Province == key })
	if i < 0 {
		return Record{}, &RegionNotFoundError{Province: province}
	}
	return records[i], nil
}
