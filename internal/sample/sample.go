// Package sample exposes a small embedded ledger covering three months. It
// contains blank lines and a couple of deliberately inconsistent rows so that
// every report section, including validation issues, has something to show.
package sample

import (
	_ "embed"
	"strings"
)

// Name is the source label used for reports built from the sample.
const Name = "sample"

//go:embed sample.csv
var ledger string

// Lines returns the embedded ledger split into lines.
func Lines() []string {
	return strings.Split(strings.TrimRight(ledger, "\n"), "\n")
}
