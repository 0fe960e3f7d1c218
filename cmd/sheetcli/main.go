// Command sheetcli is an interactive REPL over a sheet.Sheet, rendered
// as a bordered table after every successful command (a failed command
// only prints its error). Not part of the core spec
// — an external collaborator exercising the package the way a user
// would from a terminal.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cellgrid/sheet"
	"github.com/olekukonko/tablewriter"
)

type cfg struct {
	editMode bool
}

func doCommand(st *sheet.Sheet, c *cfg, s *bufio.Scanner) (string, error) {
	if !s.Scan() {
		return "", fmt.Errorf("EOF")
	}

	cmd := strings.SplitN(s.Text(), " ", 3)
	if len(cmd) == 0 {
		return "", nil
	}
	switch cmd[0] {
	case "SET":
		if len(cmd) < 3 {
			return "", fmt.Errorf("SET expects 2 arguments - SET [address] [text]")
		}
		pos := sheet.FromString(cmd[1])
		if !pos.IsValid() {
			return "", fmt.Errorf("bad address %q", cmd[1])
		}
		if err := st.SetCell(pos, cmd[2]); err != nil {
			return "", err
		}
	case "CLEAR":
		if len(cmd) < 2 {
			return "", fmt.Errorf("CLEAR expects 1 argument - CLEAR [address]")
		}
		pos := sheet.FromString(cmd[1])
		if !pos.IsValid() {
			return "", fmt.Errorf("bad address %q", cmd[1])
		}
		if err := st.ClearCell(pos); err != nil {
			return "", err
		}
	case "EDIT":
		c.editMode = !c.editMode
		return fmt.Sprintf("EDITMODE = %t", c.editMode), nil
	default:
		return "", fmt.Errorf("unknown command %s", cmd[0])
	}
	return "OK", nil
}

func writeSheet(s *sheet.Sheet, c *cfg) {
	var b bytes.Buffer
	var err error
	if c.editMode {
		err = s.PrintTexts(&b)
	} else {
		err = s.PrintValues(&b)
	}
	if err != nil {
		log.Printf("failed to render sheet: %s", err)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	for _, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
		table.Append(strings.Split(line, "\t"))
	}
	table.Render()
}

func main() {
	s := sheet.NewSheet()
	s.SetCell(sheet.Position{Row: 0, Col: 0}, "1")
	s.SetCell(sheet.Position{Row: 1, Col: 1}, "1")
	s.SetCell(sheet.Position{Row: 2, Col: 2}, "1")

	scanner := bufio.NewScanner(os.Stdin)
	var c cfg
	writeSheet(s, &c)
	for {
		fmt.Printf("sheet > ")
		response, err := doCommand(s, &c, scanner)
		if err != nil {
			if err.Error() == "EOF" {
				return
			}
			fmt.Println(err)
			continue
		}
		writeSheet(s, &c)
		fmt.Println(response)
	}
}
