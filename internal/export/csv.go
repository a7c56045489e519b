// Package export serializes match result sets to flat tabular formats
// for offline analysis.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"talent-match/internal/domain/match"
)

var baseHeader = []string{"candidate_id", "job_id", "version", "score", "confidence", "status"}

// WriteCSV streams one row per match result. Factor columns follow the
// canonical factor order; a factor absent from a result is left empty.
func WriteCSV(w io.Writer, results []match.Result) error {
	cw := csv.NewWriter(w)

	header := append([]string(nil), baseHeader...)
	for _, cat := range match.FactorOrder {
		header = append(header, string(cat))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, res := range results {
		row := []string{
			res.CandidateID.String(),
			res.JobID.String(),
			strconv.Itoa(res.Version),
			strconv.Itoa(res.Score),
			strconv.FormatFloat(res.Confidence, 'f', 2, 64),
			string(res.Status),
		}

		raw := make(map[match.FactorCategory]int, len(res.Factors))
		for _, f := range res.Factors {
			raw[f.Category] = f.RawScore
		}
		for _, cat := range match.FactorOrder {
			if v, ok := raw[cat]; ok {
				row = append(row, strconv.Itoa(v))
			} else {
				row = append(row, "")
			}
		}

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
