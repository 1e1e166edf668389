// Package input loads (source, target) pairs from CSV files exported from the
// usual migration spreadsheets.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oussamac10/redirect-checker/internal/model"
)

// ErrMissingColumns is returned when the header row lacks a source or target
// column.
var ErrMissingColumns = errors.New("input must contain columns named \"source\" and \"target\"")

// Pairs reads CSV from r. The first row is a header and must contain columns
// case-insensitively named "source" and "target"; extra columns are ignored.
// Rows where either cell is empty after trimming are skipped.
func Pairs(r io.Reader) ([]model.RedirectPair, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingColumns
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	srcIdx, tgtIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "source":
			if srcIdx == -1 {
				srcIdx = i
			}
		case "target":
			if tgtIdx == -1 {
				tgtIdx = i
			}
		}
	}
	if srcIdx == -1 || tgtIdx == -1 {
		return nil, ErrMissingColumns
	}

	var pairs []model.RedirectPair
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if srcIdx >= len(row) || tgtIdx >= len(row) {
			continue
		}
		src := strings.TrimSpace(row[srcIdx])
		tgt := strings.TrimSpace(row[tgtIdx])
		if src == "" || tgt == "" {
			continue
		}
		pairs = append(pairs, model.RedirectPair{Source: src, Target: tgt})
	}
	return pairs, nil
}

// PairsFromFile opens path and delegates to Pairs.
func PairsFromFile(path string) ([]model.RedirectPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Pairs(f)
}
