package vplan

import "leonardo-backend/lib/htmlutil"

// Placeholder is the cell value of a row that continues a merged cell of the
// row above it.
const Placeholder = htmlutil.NbspEntity

// Columns lists the table columns in the order they appear on a page.
var Columns = [...]string{"class", "lesson", "subject", "room", "teachers", "info", "notes"}

// Row is one table row with its merged cells resolved.
type Row struct {
	Class    string
	Lesson   string
	Subject  string
	Room     string
	Teachers string
	Info     string
	Notes    string
}

// carry holds the last concrete value of every column that may be merged
// across rows, it never crosses a page boundary.
type carry struct {
	class  string
	lesson string
}

func inherit(cell string, last *string) string {
	if cell == Placeholder {
		return *last
	}
	*last = cell
	return cell
}

func expandRow(idx int, cells []string, state carry) (Row, carry, error) {
	if len(cells) < len(Columns) {
		return Row{}, state, &RowShapeError{
			Row:    idx,
			Column: Columns[len(cells)],
			Have:   len(cells),
		}
	}

	row := Row{
		Class:    inherit(cells[0], &state.class),
		Lesson:   inherit(cells[1], &state.lesson),
		Subject:  cells[2],
		Room:     cells[3],
		Teachers: cells[4],
		Info:     cells[5],
		Notes:    cells[6],
	}
	return row, state, nil
}

// ExpandRows resolves the raw rows of a single page.
func ExpandRows(rows [][]string) ([]Row, error) {
	out := make([]Row, 0, len(rows))
	state := carry{}
	for i, cells := range rows {
		var row Row
		var err error
		row, state, err = expandRow(i, cells, state)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}
