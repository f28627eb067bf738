package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var sheetNameRe = regexp.MustCompile(`^xl/worksheets/sheet(\d+)\.xml$`)

// extractXLSX loads the first worksheet as a grid and renders it as a
// whitespace-aligned plain-text table: header row first, column order
// preserved, no index column.
func extractXLSX(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}

	shared, err := readSharedStrings(r)
	if err != nil {
		return "", err
	}

	sheet := firstWorksheet(r)
	if sheet == nil {
		return "", fmt.Errorf("no worksheet found in archive")
	}

	grid, err := readSheetGrid(sheet, shared)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", sheet.Name, err)
	}
	return formatGrid(grid), nil
}

// firstWorksheet picks the lowest-numbered sheet part, which the writing
// applications emit for the first worksheet of the workbook.
func firstWorksheet(r *zip.Reader) *zip.File {
	type sheet struct {
		file *zip.File
		num  int
	}
	var sheets []sheet
	for _, f := range r.File {
		if m := sheetNameRe.FindStringSubmatch(f.Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			sheets = append(sheets, sheet{file: f, num: n})
		}
	}
	if len(sheets) == 0 {
		return nil
	}
	sort.Slice(sheets, func(i, j int) bool { return sheets[i].num < sheets[j].num })
	return sheets[0].file
}

func readSharedStrings(r *zip.Reader) ([]string, error) {
	var ssFile *zip.File
	for _, f := range r.File {
		if f.Name == "xl/sharedStrings.xml" {
			ssFile = f
			break
		}
	}
	if ssFile == nil {
		return nil, nil
	}

	rc, err := ssFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open sharedStrings.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var (
		shared  []string
		current strings.Builder
		inItem  bool
		inText  bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse sharedStrings.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				inItem = true
				current.Reset()
			case "t":
				inText = inItem
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "si":
				if inItem {
					shared = append(shared, current.String())
					inItem = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return shared, nil
}

// readSheetGrid parses the worksheet rows into a rectangular string grid.
// Cell positions come from the cell reference (e.g. "B3") so gaps stay
// aligned with their columns.
func readSheetGrid(f *zip.File, shared []string) ([][]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var (
		grid     [][]string
		row      []string
		cellType string
		cellRef  string
		value    strings.Builder
		inValue  bool
		inRow    bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "row":
				inRow = true
				row = nil
			case "c":
				cellType = ""
				cellRef = ""
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "t":
						cellType = attr.Value
					case "r":
						cellRef = attr.Value
					}
				}
			case "v", "t":
				if inRow {
					inValue = true
					value.Reset()
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "row":
				if inRow {
					grid = append(grid, row)
					inRow = false
				}
			case "c":
				if inRow {
					row = placeCell(row, cellRef, cellValue(cellType, value.String(), shared))
					value.Reset()
				}
			case "v", "t":
				inValue = false
			}
		case xml.CharData:
			if inValue {
				value.Write(t)
			}
		}
	}
	return grid, nil
}

func cellValue(cellType, raw string, shared []string) string {
	switch cellType {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil && idx >= 0 && idx < len(shared) {
			return shared[idx]
		}
		return raw
	case "b":
		if strings.TrimSpace(raw) == "1" {
			return "True"
		}
		return "False"
	default:
		return raw
	}
}

// placeCell puts the value at the column its reference names, padding any
// skipped columns with empty strings.
func placeCell(row []string, ref, value string) []string {
	col := columnIndex(ref)
	if col < 0 {
		return append(row, value)
	}
	for len(row) < col {
		row = append(row, "")
	}
	return append(row, value)
}

// columnIndex converts the letter prefix of a cell reference ("BC12") to a
// zero-based column index. Returns -1 when there is no reference.
func columnIndex(ref string) int {
	idx := 0
	seen := false
	for _, ch := range ref {
		if ch < 'A' || ch > 'Z' {
			break
		}
		idx = idx*26 + int(ch-'A') + 1
		seen = true
	}
	if !seen {
		return -1
	}
	return idx - 1
}

// formatGrid renders the grid with right-aligned columns separated by two
// spaces, matching the tabular plain-text dump of the source system.
func formatGrid(grid [][]string) string {
	if len(grid) == 0 {
		return ""
	}

	cols := 0
	for _, row := range grid {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]int, cols)
	for _, row := range grid {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	lines := make([]string, 0, len(grid))
	for _, row := range grid {
		cells := make([]string, cols)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = fmt.Sprintf("%*s", widths[i], cell)
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
	return strings.Join(lines, "\n")
}
