package grid

import (
	"strconv"
	"strings"
)

// ParsePosition parses position text into a zero-based cell span. Two
// grammars are accepted:
//
//   - spreadsheet style: "B2" for a single cell, "A1:C3" for an inclusive
//     range (case-insensitive; corners in either order)
//   - coordinate style: "row,col" for a single cell, "row,col:RxC" for an
//     explicit span (zero-based)
func ParsePosition(text string) (CellSpan, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return CellSpan{}, &ParseError{Input: text, Reason: "empty position"}
	}
	if strings.Contains(trimmed, ",") {
		return parseCoordinate(trimmed)
	}
	return parseSpreadsheet(trimmed)
}

// FormatPosition renders a span in canonical spreadsheet notation: a single
// cell reference when the span is 1x1, otherwise "TopLeft:BottomRight".
// This is the inverse of ParsePosition for spreadsheet-style input.
func FormatPosition(span CellSpan) string {
	start := columnLabel(span.Col) + strconv.Itoa(span.Row+1)
	if span.RowSpan <= 1 && span.ColSpan <= 1 {
		return start
	}
	end := columnLabel(span.Col+span.ColSpan-1) + strconv.Itoa(span.Row+span.RowSpan)
	return start + ":" + end
}

func parseSpreadsheet(text string) (CellSpan, error) {
	first, second, isRange := strings.Cut(text, ":")

	startRow, startCol, err := parseCellRef(text, first)
	if err != nil {
		return CellSpan{}, err
	}
	if !isRange {
		return CellSpan{Row: startRow, Col: startCol, RowSpan: 1, ColSpan: 1}, nil
	}

	endRow, endCol, err := parseCellRef(text, second)
	if err != nil {
		return CellSpan{}, err
	}

	// Corners may be given in any order; normalize to top-left start.
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return CellSpan{
		Row:     startRow,
		Col:     startCol,
		RowSpan: endRow - startRow + 1,
		ColSpan: endCol - startCol + 1,
	}, nil
}

// parseCellRef parses a single "<letters><digits>" reference into a
// zero-based (row, col) pair. input is the full position text, kept only for
// error reporting.
func parseCellRef(input, ref string) (row, col int, err error) {
	ref = strings.TrimSpace(ref)
	i := 0
	for i < len(ref) && isLetter(ref[i]) {
		i++
	}
	if i == 0 {
		return 0, 0, &ParseError{Input: input, Reason: "cell reference must start with a column letter"}
	}
	letters := ref[:i]
	digits := ref[i:]
	if digits == "" {
		return 0, 0, &ParseError{Input: input, Reason: "cell reference is missing a row number"}
	}

	rowNum, convErr := strconv.Atoi(digits)
	if convErr != nil || rowNum < 1 {
		return 0, 0, &ParseError{Input: input, Reason: "row must be a positive number"}
	}

	// Bijective base-26: A=1 .. Z=26, AA=27.
	colNum := 0
	for j := 0; j < len(letters); j++ {
		c := letters[j]
		if c >= 'a' {
			c -= 'a' - 'A'
		}
		colNum = colNum*26 + int(c-'A') + 1
	}

	return rowNum - 1, colNum - 1, nil
}

func parseCoordinate(text string) (CellSpan, error) {
	cell, size, hasSize := strings.Cut(text, ":")

	rowPart, colPart, ok := strings.Cut(cell, ",")
	if !ok {
		return CellSpan{}, &ParseError{Input: text, Reason: "expected row,col"}
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowPart))
	if err != nil || row < 0 {
		return CellSpan{}, &ParseError{Input: text, Reason: "row must be a non-negative number"}
	}
	col, err := strconv.Atoi(strings.TrimSpace(colPart))
	if err != nil || col < 0 {
		return CellSpan{}, &ParseError{Input: text, Reason: "column must be a non-negative number"}
	}

	span := CellSpan{Row: row, Col: col, RowSpan: 1, ColSpan: 1}
	if !hasSize {
		return span, nil
	}

	rowsPart, colsPart, ok := strings.Cut(size, "x")
	if !ok {
		return CellSpan{}, &ParseError{Input: text, Reason: "expected span as RxC after colon"}
	}
	span.RowSpan, err = strconv.Atoi(strings.TrimSpace(rowsPart))
	if err != nil || span.RowSpan < 1 {
		return CellSpan{}, &ParseError{Input: text, Reason: "row span must be a positive number"}
	}
	span.ColSpan, err = strconv.Atoi(strings.TrimSpace(colsPart))
	if err != nil || span.ColSpan < 1 {
		return CellSpan{}, &ParseError{Input: text, Reason: "column span must be a positive number"}
	}
	return span, nil
}

// columnLabel converts a zero-based column index to its spreadsheet letters
// (0 -> "A", 25 -> "Z", 26 -> "AA").
func columnLabel(col int) string {
	n := col + 1
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
