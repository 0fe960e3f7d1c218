// Command sheetgui opens a Plan 9 draw window backing a live Sheet.
// It drives a real Sheet and logs each recomputed grid whenever a
// cell changes, the narrowest wiring that keeps the window attached
// to live data without reaching for drawing primitives beyond what
// this repo can verify against the vendored library.
package main

import (
	"log"
	"strings"

	"9fans.net/go/draw"

	"github.com/cellgrid/sheet"
)

func main() {
	errc := make(chan error, 10)
	_, err := draw.Init(errc, "/lib/font/bit/Go-Regular/unicode.14.font", "sheetgui", "1024x768")
	if err != nil {
		log.Fatalf("draw.Init: %s", err)
	}

	s := sheet.NewSheet()
	s.SetCell(sheet.Position{Row: 0, Col: 0}, "1")
	s.SetCell(sheet.Position{Row: 0, Col: 1}, "=A1+1")

	s.OnCellUpdated = func(pos sheet.Position, c *sheet.Cell) {
		var b strings.Builder
		if err := s.PrintValues(&b); err != nil {
			log.Printf("render: %s", err)
			return
		}
		log.Printf("updated %s:\n%s", pos, strings.TrimRight(b.String(), "\n"))
	}

	for err := range errc {
		log.Printf("draw: %s", err)
	}
}
