// Command swiff is an offline calculator for splitting bills and settling
// debts. It runs the same engine as the server without touching storage.
package main

import (
	"os"
	"strings"
	"unicode"

	"github.com/pterm/pterm"
)

func main() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(capitalize(err.Error()))
		os.Exit(1)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return strings.TrimSpace(string(r))
}
