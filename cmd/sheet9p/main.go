// Command sheet9p exposes a sheet.Sheet as a Plan 9 filesystem: a
// "ctl" file accepting "<addr> <len> <text>" cell assignments (see
// readCommand) and an "updates" file streaming
// every cell that changes as a result.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/cellgrid/sheet"
	"github.com/knusbaum/go9p"
	"github.com/knusbaum/go9p/fs"
)

// readCommand parses one line of the wire protocol: "<addr> <len> <text>\n"
// where len is the byte length of text.
func readCommand(r *bufio.Reader) (sheet.Position, string, error) {
	addrTok, err := r.ReadString(' ')
	if err != nil {
		return sheet.NONE, "", err
	}
	addrTok = strings.TrimSpace(addrTok)

	lenTok, err := r.ReadString(' ')
	if err != nil {
		return sheet.NONE, "", err
	}
	clen, err := strconv.Atoi(strings.TrimSpace(lenTok))
	if err != nil {
		return sheet.NONE, "", fmt.Errorf("bad length in command: %v", err)
	}
	if clen > 4096 {
		return sheet.NONE, "", fmt.Errorf("content length %d exceeds 4096", clen)
	}

	buf := make([]byte, clen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return sheet.NONE, "", err
	}
	if _, err := r.ReadString('\n'); err != nil {
		return sheet.NONE, "", err
	}

	pos := sheet.FromString(addrTok)
	if !pos.IsValid() {
		return sheet.NONE, "", fmt.Errorf("bad address %q", addrTok)
	}
	return pos, string(buf), nil
}

func main() {
	sheetFS := fs.NewFS("glenda", "glenda", 0555)

	outputStream := fs.NewStream(100, false)
	updates := fs.NewStreamFile(sheetFS.NewStat("updates", "glenda", "glenda", 0444), outputStream)
	sheetFS.Root.AddChild(updates)

	inputStream := fs.NewStream(100, false)
	ctl := fs.NewStreamFile(sheetFS.NewStat("ctl", "glenda", "glenda", 0222), inputStream)
	sheetFS.Root.AddChild(ctl)

	s := sheet.NewSheet()
	s.OnCellUpdated = func(pos sheet.Position, c *sheet.Cell) {
		value := c.GetValue().String()
		outputStream.Write([]byte(fmt.Sprintf("%s %d %s\n", pos, len(value), value)))
	}

	go func() {
		r := bufio.NewReader(inputStream.AddReader())
		for {
			pos, text, err := readCommand(r)
			if err != nil {
				log.Printf("failed to read command: %s", err)
				continue
			}
			if err := s.SetCell(pos, text); err != nil {
				log.Printf("SetCell(%s): %s", pos, err)
			}
		}
	}()

	go9p.PostSrv("sheetfs", sheetFS.Server())
}
