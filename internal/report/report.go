// Package report turns a run's CheckResults into consumable output: the
// ok/broken partition, the CSV export of failures, per-kind summary counters
// and the display text for each result.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/oussamac10/redirect-checker/internal/model"
)

// CSVHeader is the header row of every CSV export.
var CSVHeader = []string{"Source", "Target", "Status", "Final URL"}

// Classify partitions results into correctly redirecting pairs and everything
// else. Broken preserves the input order of results.
func Classify(results []model.CheckResult) (ok, broken []model.CheckResult) {
	for _, r := range results {
		if r.OK() {
			ok = append(ok, r)
		} else {
			broken = append(broken, r)
		}
	}
	return ok, broken
}

// StatusText maps a result to its display string. Pure presentation; nothing
// filters on these strings.
func StatusText(r model.CheckResult) string {
	switch r.Kind {
	case model.StatusOK:
		return "redirect ok"
	case model.StatusHTTPError:
		return fmt.Sprintf("HTTP error %s", r.Detail)
	case model.StatusWrongDestination:
		if r.CrossSite {
			return fmt.Sprintf("wrong destination, cross-site (→ %s)", r.FinalURL)
		}
		return fmt.Sprintf("wrong destination (→ %s)", r.FinalURL)
	case model.StatusTransportError:
		return fmt.Sprintf("error: %s", r.Detail)
	default:
		return string(r.Kind)
	}
}

// WriteCSV writes results as UTF-8 CSV with the standard header.
func WriteCSV(w io.Writer, results []model.CheckResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{r.Source, r.Target, StatusText(r), r.FinalURL}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV renders results to an in-memory CSV byte sequence.
func ExportCSV(results []model.CheckResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Summary contains per-kind counters for a completed run.
type Summary struct {
	Total            int
	OK               int
	WrongDestination int
	HTTPError        int
	TransportError   int
}

// Broken returns how many results were anything other than ok.
func (s Summary) Broken() int { return s.Total - s.OK }

// BuildSummary derives counters from the results.
func BuildSummary(results []model.CheckResult) Summary {
	sum := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Kind {
		case model.StatusOK:
			sum.OK++
		case model.StatusWrongDestination:
			sum.WrongDestination++
		case model.StatusHTTPError:
			sum.HTTPError++
		case model.StatusTransportError:
			sum.TransportError++
		}
	}
	return sum
}
