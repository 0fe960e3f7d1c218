package sheet

import (
	"io"
)

// Sheet is a sparse Position→Cell grid. It uniquely owns every Cell
// it creates; graph edges between cells live only as Position
// identifiers, resolved back through this map on every walk.
type Sheet struct {
	cells map[Position]*Cell

	// OnCellUpdated, if set, is called once for the edited cell of a
	// successful SetCell/ClearCell call and once for every formula
	// dependent recomputed as a result, whether or not its visible
	// value actually differs from before. Lets a
	// caller drive a live view (a 9P update stream, a GUI repaint)
	// without polling; unset by default and optional.
	OnCellUpdated func(Position, *Cell)
}

// NewSheet returns an empty, ready-to-use sheet.
func NewSheet() *Sheet {
	return &Sheet{cells: make(map[Position]*Cell)}
}

func (s *Sheet) ensureCell(pos Position) *Cell {
	c := s.cells[pos]
	if c == nil {
		c = newCell(pos)
		s.cells[pos] = c
	}
	return c
}

// GetCell returns the cell at pos, or nil if the map holds no cell
// there (never set nor referenced by a formula, or dropped by
// ClearCell). It fails only on an out-of-grid Position.
func (s *Sheet) GetCell(pos Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, &InvalidPositionError{Pos: pos, Op: "GetCell"}
	}
	return s.cells[pos], nil
}

// GetCellValue implements SheetView for formula evaluation: a missing
// cell reports ok=false so callers (CellRef evaluation) can treat it
// as Number(0) without allocating a placeholder just to read it.
func (s *Sheet) GetCellValue(pos Position) (CellValue, bool) {
	c := s.cells[pos]
	if c == nil {
		return CellValue{}, false
	}
	return c.GetValue(), true
}

// SetCell is the sole mutating entry point. It is a single
// transaction: on success the cell's impl, the dependency graph, and
// every downstream cache are mutually consistent; on
// CircularDependencyError (or a formula syntax error) nothing at all
// has changed.
func (s *Sheet) SetCell(pos Position, text string) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Pos: pos, Op: "SetCell"}
	}

	kind, formula, err := newImplForText(text)
	if err != nil {
		return err
	}

	_, existed := s.cells[pos]
	cell := s.ensureCell(pos)

	oldKind := cell.kind
	oldText := cell.text
	oldFormula := cell.formula
	oldCached := cell.cached
	oldDeps := cloneSet(cell.deps)

	var refs []Position
	if kind == cellFormula {
		refs = formula.GetReferencedCells()
	}
	newDeps := make(map[Position]struct{}, len(refs))
	var created []Position
	for _, r := range refs {
		newDeps[r] = struct{}{}
		if s.cells[r] == nil {
			created = append(created, r)
		}
		s.ensureCell(r) // placeholder for an in-bounds, currently-absent reference
	}

	applyDepDiff(s, pos, oldDeps, newDeps)

	cell.kind = kind
	cell.text = text
	cell.formula = formula
	cell.deps = newDeps
	if kind == cellFormula {
		cell.cached = formula.Evaluate(s)
	} else {
		cell.cached = NumberValue(0)
	}

	if hasCycle(s, pos) {
		applyDepDiff(s, pos, newDeps, oldDeps)
		cell.kind = oldKind
		cell.text = oldText
		cell.formula = oldFormula
		cell.deps = oldDeps
		cell.cached = oldCached
		for _, r := range created {
			delete(s.cells, r)
		}
		if !existed {
			delete(s.cells, pos)
		}
		return &CircularDependencyError{Pos: pos}
	}

	invalidateDependents(s, pos)
	if s.OnCellUpdated != nil {
		s.OnCellUpdated(pos, cell)
	}
	return nil
}

// ClearCell resets the cell at pos to Empty. If nothing else depends
// on it, it is dropped from the map entirely; otherwise it is kept as
// an Empty placeholder so existing dependents' edges stay valid — a
// cell with live downstream dependents can't simply vanish without
// leaving those dependents pointing at nothing.
func (s *Sheet) ClearCell(pos Position) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Pos: pos, Op: "ClearCell"}
	}
	cell := s.cells[pos]
	if cell == nil {
		return nil
	}

	oldDeps := cloneSet(cell.deps)
	applyDepDiff(s, pos, oldDeps, nil)

	cell.kind = cellEmpty
	cell.text = ""
	cell.formula = nil
	cell.deps = make(map[Position]struct{})
	cell.cached = NumberValue(0)

	if len(cell.rdeps) == 0 {
		delete(s.cells, pos)
	}

	invalidateDependents(s, pos)
	if s.OnCellUpdated != nil {
		s.OnCellUpdated(pos, cell)
	}
	return nil
}

// GetPrintableSize returns the bounding rectangle over occupied
// cells, {0,0} if the sheet is empty.
func (s *Sheet) GetPrintableSize() Size {
	maxRow, maxCol := -1, -1
	for pos := range s.cells {
		if pos.Row > maxRow {
			maxRow = pos.Row
		}
		if pos.Col > maxCol {
			maxCol = pos.Col
		}
	}
	if maxRow < 0 {
		return Size{}
	}
	return Size{Rows: maxRow + 1, Cols: maxCol + 1}
}

// PrintValues writes each occupied row as tab-separated visible
// values followed by '\n'; empty cells print as empty fields.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.printGrid(w, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.GetValue().String()
	})
}

// PrintTexts writes each occupied row as tab-separated edit-form
// texts followed by '\n'.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.printGrid(w, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.GetText()
	})
}

func (s *Sheet) printGrid(w io.Writer, render func(*Cell) string) error {
	size := s.GetPrintableSize()
	for row := 0; row < size.Rows; row++ {
		for col := 0; col < size.Cols; col++ {
			if col > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			c := s.cells[Position{Row: row, Col: col}]
			if _, err := io.WriteString(w, render(c)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
