package app

import (
	"sort"

	"github.com/wizardassassin/GCCA-Parser/internal/archive"
)

// statsRow is one family/year line of the index summary.
type statsRow struct {
	Family      string `json:"family"`
	Year        int    `json:"year"`
	Rounds      int    `json:"rounds"`
	Problems    int    `json:"problems"`
	Default     int    `json:"default"`
	Custom      int    `json:"custom"`
	Interactive int    `json:"interactive"`
	Points      int    `json:"points"`
}

// indexStats summarizes an index for display and history.
type indexStats struct {
	Rows     []statsRow `json:"rows"`
	Rounds   int        `json:"rounds"`
	Problems int        `json:"problems"`
	HashCode []int      `json:"hashcode_years"`
}

// collectStats counts rounds, problems and validation modes per family and
// year. Rows are sorted by family, then year.
func collectStats(ix archive.Index) indexStats {
	s := indexStats{Rows: []statsRow{}, HashCode: []int{}}
	for family, years := range ix.Rounds {
		for year, rounds := range years {
			row := statsRow{Family: family, Year: year, Rounds: len(rounds)}
			for _, r := range rounds {
				for _, p := range r.Problems {
					row.Problems++
					switch p.Validation {
					case archive.ValidationDefault:
						row.Default++
						if p.Info.TestData != nil {
							row.Points += p.Info.TestData.Points
						}
					case archive.ValidationCustom:
						row.Custom++
					case archive.ValidationCustomInteractive:
						row.Interactive++
					}
				}
			}
			s.Rounds += row.Rounds
			s.Problems += row.Problems
			s.Rows = append(s.Rows, row)
		}
	}
	sort.Slice(s.Rows, func(i, j int) bool {
		if s.Rows[i].Family != s.Rows[j].Family {
			return s.Rows[i].Family < s.Rows[j].Family
		}
		return s.Rows[i].Year < s.Rows[j].Year
	})

	for year := range ix.HashCode {
		s.HashCode = append(s.HashCode, year)
	}
	sort.Ints(s.HashCode)
	return s
}
