package banner

import (
	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

func PrintBanner() {
	fig := figure.NewColorFigure("REDIRECTS", "doom", "cyan", true)
	fig.Print()

	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	_, _ = cyan.Println("════════════════════════════════════════════════")
	_, _ = green.Println("    Bulk redirect verifier for site migrations")
	_, _ = cyan.Println("════════════════════════════════════════════════")
}
