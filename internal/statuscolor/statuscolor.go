package statuscolor

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/oussamac10/redirect-checker/internal/model"
	"github.com/oussamac10/redirect-checker/internal/report"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	gray   = color.New(color.FgHiBlack)
)

func forKind(k model.StatusKind) *color.Color {
	switch k {
	case model.StatusOK:
		return green
	case model.StatusWrongDestination:
		return yellow
	default:
		return red
	}
}

// Status returns a colorized HTTP status code string; 0 renders as a gray dash.
func Status(code int) string {
	if code == 0 {
		return gray.Sprint("—")
	}
	switch {
	case code >= 400:
		return red.Sprint(code)
	case code >= 300:
		return yellow.Sprint(code)
	default:
		return green.Sprint(code)
	}
}

// Line renders one result as a colorized console line.
func Line(r model.CheckResult) string {
	return fmt.Sprintf("%s %s %s", Status(r.StatusCode), r.Source,
		forKind(r.Kind).Sprint(report.StatusText(r)))
}

// Wrap colors arbitrary text with the color matching the status kind.
func Wrap(text string, k model.StatusKind) string {
	return forKind(k).Sprint(text)
}
