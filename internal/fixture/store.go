// Package fixture implements a local report API server for development
// and tests. It serves the same endpoint shapes as the production backend
// but loads everything from a directory of per-day CSV files.
package fixture

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "fixture")

// Store holds fixture payloads in RAM, keyed by report date. Files are
// read once at load time; reads afterward never hit the filesystem.
type Store struct {
	dataDir string
	rates   map[string]float64

	energy map[string]map[string]any // "2021-07-22" and "2021-07" keys
	bids   map[string]map[string]any
	dates  map[string][]string // "2021-07" -> ["05", "20", ...]
}

// Load scans dataDir for report files and builds all served payloads.
// Energy files are named "YYYY-MM-DD.csv", bid files "YYYY-MM-DD-bids.csv";
// anything else is ignored. rates maps day strings to carbon intensity;
// days without a rate are served as -1.
func Load(dataDir string, rates map[string]float64) (*Store, error) {
	s := &Store{
		dataDir: dataDir,
		rates:   rates,
		energy:  map[string]map[string]any{},
		bids:    map[string]map[string]any{},
		dates:   map[string][]string{},
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("reading fixture data dir: %w", err)
	}

	daySet := map[string]map[string]bool{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		date := e.Name()[:min(10, len(e.Name()))]
		if !validDayName(date) {
			continue
		}
		isBid := strings.HasSuffix(e.Name(), "-bids.csv")

		rows, err := readCSVRows(filepath.Join(dataDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", e.Name(), err)
		}

		// Either file kind marks the day as having a report.
		month := date[:7]
		if daySet[month] == nil {
			daySet[month] = map[string]bool{}
		}
		daySet[month][date[8:10]] = true

		if isBid {
			log.Infof("BID    | %s (%d rows)", date, len(rows))
			s.bids[date] = map[string]any{"data": rows}
			continue
		}

		log.Infof("ENERGY | %s (%d rows)", date, len(rows))
		s.energy[date] = map[string]any{
			"data":       rows,
			"carbonRate": s.dayRates(date),
		}
	}

	for month, days := range daySet {
		lst := make([]string, 0, len(days))
		for d := range days {
			lst = append(lst, d)
		}
		sort.Strings(lst)
		s.dates[month] = lst
	}

	s.collateMonths()
	return s, nil
}

// Energy returns the energy payload for a day or month date.
func (s *Store) Energy(date string) (map[string]any, bool) {
	p, ok := s.energy[date]
	return p, ok
}

// Bids returns the bids payload for a date.
func (s *Store) Bids(date string) (map[string]any, bool) {
	p, ok := s.bids[date]
	return p, ok
}

// Dates returns the catalog of months with available report days.
func (s *Store) Dates() map[string][]string {
	return s.dates
}

// CSVPath returns the on-disk export file for a date, if the date has data
// of the requested kind.
func (s *Store) CSVPath(date string, bids bool) (string, bool) {
	if bids {
		if _, ok := s.bids[date]; !ok {
			return "", false
		}
		return filepath.Join(s.dataDir, date+"-bids.csv"), true
	}
	if _, ok := s.energy[date]; !ok {
		return "", false
	}
	return filepath.Join(s.dataDir, date+".csv"), true
}

// collateMonths builds one month-level payload per catalog month by
// concatenating its day rows in day order. The carbonRate map covers every
// calendar day of the month.
func (s *Store) collateMonths() {
	for month, days := range s.dates {
		log.Infof("COLLATE | %s (%d days)", month, len(days))
		var rows []any
		for _, day := range days {
			if p, ok := s.energy[month+"-"+day]; ok {
				rows = append(rows, p["data"].([]any)...)
			}
		}
		s.energy[month] = map[string]any{
			"data":       rows,
			"carbonRate": s.monthRates(month),
		}
	}
}

// dayRates covers the report day and the preceding day: a day file's
// records begin on the previous calendar day.
func (s *Store) dayRates(date string) map[string]float64 {
	out := map[string]float64{date: s.rate(date)}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		prev := t.AddDate(0, 0, -1).Format("2006-01-02")
		out[prev] = s.rate(prev)
	}
	return out
}

func (s *Store) monthRates(month string) map[string]float64 {
	out := map[string]float64{}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return out
	}
	days := start.AddDate(0, 1, -1).Day()
	for d := 1; d <= days; d++ {
		day := fmt.Sprintf("%s-%02d", month, d)
		out[day] = s.rate(day)
	}
	return out
}

// rate returns the configured carbon rate for a day, -1 when unknown.
func (s *Store) rate(day string) float64 {
	if r, ok := s.rates[day]; ok {
		return r
	}
	return -1
}

// readCSVRows reads a report CSV into positional JSON-shaped rows: the
// first column stays a string, the rest become numbers, and empty or NaN
// cells become nulls.
func readCSVRows(path string) ([]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []any{}, nil
	}

	rows := make([]any, 0, len(records)-1)
	for _, rec := range records[1:] { // skip header
		row := make([]any, 0, len(rec))
		for i, cell := range rec {
			if i == 0 {
				row = append(row, cell)
				continue
			}
			row = append(row, parseCell(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseCell converts a CSV cell into its JSON value. Bid type tags stay
// strings; empty and NaN cells become nil.
func parseCell(cell string) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" || strings.EqualFold(trimmed, "nan") {
		return nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return trimmed
}

// validDayName applies the same loose filename check the production backend
// used: a 20xx date of exactly three dash-separated parts.
func validDayName(date string) bool {
	return len(date) == 10 &&
		strings.HasPrefix(date, "20") &&
		len(strings.Split(date, "-")) == 3
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
