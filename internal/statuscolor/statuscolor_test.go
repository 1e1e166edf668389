package statuscolor

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/oussamac10/redirect-checker/internal/model"
)

func TestLine(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	res := model.CheckResult{
		Source:     "https://old.example.com/a",
		Target:     "https://new.example.com/a",
		Kind:       model.StatusHTTPError,
		FinalURL:   "https://old.example.com/a",
		Detail:     "404",
		StatusCode: 404,
	}
	line := Line(res)
	for _, want := range []string{"404", "https://old.example.com/a", "HTTP error 404"} {
		if !strings.Contains(line, want) {
			t.Fatalf("line %q missing %q", line, want)
		}
	}
}

func TestStatusZero(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	if got := Status(0); got != "—" {
		t.Fatalf("Status(0) = %q, want dash", got)
	}
}
