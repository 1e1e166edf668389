package input_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oussamac10/redirect-checker/internal/input"
)

func TestPairs(t *testing.T) {
	t.Parallel()
	csv := "Notes,SOURCE,Target\n" +
		"keep,https://old.example.com/a,https://new.example.com/a\n" +
		"skip-no-target,https://old.example.com/b,\n" +
		"skip-no-source,,https://new.example.com/c\n" +
		"trimmed,  https://old.example.com/d ,https://new.example.com/d\n"

	pairs, err := input.Pairs(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Pairs: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d: %+v", len(pairs), pairs)
	}
	if pairs[0].Source != "https://old.example.com/a" || pairs[0].Target != "https://new.example.com/a" {
		t.Fatalf("unexpected first pair: %+v", pairs[0])
	}
	if pairs[1].Source != "https://old.example.com/d" {
		t.Fatalf("expected whitespace-trimmed source, got %q", pairs[1].Source)
	}
}

func TestPairsMissingColumns(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		csv  string
	}{
		{"noTarget", "source,destination\na,b\n"},
		{"noSource", "from,target\na,b\n"},
		{"empty", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := input.Pairs(strings.NewReader(tt.csv)); !errors.Is(err, input.ErrMissingColumns) {
				t.Fatalf("expected ErrMissingColumns, got %v", err)
			}
		})
	}
}

func TestPairsShortRows(t *testing.T) {
	t.Parallel()
	csv := "source,target\nhttps://a\nhttps://b,https://c\n"
	pairs, err := input.Pairs(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Pairs: %v", err)
	}
	if len(pairs) != 1 || pairs[0].Source != "https://b" {
		t.Fatalf("expected the short row skipped, got %+v", pairs)
	}
}

func TestPairsFromFile(t *testing.T) {
	t.Parallel()
	p := filepath.Join(t.TempDir(), "pairs.csv")
	content := "source,target\nhttps://old.example.com/x,https://new.example.com/x\n"
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	pairs, err := input.PairsFromFile(p)
	if err != nil {
		t.Fatalf("PairsFromFile: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}

	if _, err := input.PairsFromFile(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
