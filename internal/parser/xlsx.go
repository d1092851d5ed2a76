package parser

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/colprofile-cli/internal/dataset"
	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".xlsx") || strings.HasSuffix(name, ".xlsm")
}

// Load reads the selected sheet. The first row is the header. A column is
// declared Numeric when every non-empty cell is stored as a number or a
// boolean in the workbook; numbers stored as text keep the column Text.
// Numbers carrying a date or time format load as date labels, which makes
// their column Text.
func (xlsxLoader) Load(path string, opt Options) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := resolveSheet(f, path, opt)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read header: sheet %q in %s is empty", sheet, filepath.Base(path))
	}
	dates := newDateFormats(f)
	header := rows[0]
	body := rows[1:]
	if opt.MaxRows > 0 && len(body) > opt.MaxRows {
		body = body[:opt.MaxRows]
	}

	cols := make([]dataset.Column, len(header))
	for j, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", j+1)
		}
		cols[j] = dataset.Column{Name: h, Storage: dataset.Numeric, Cells: make([]dataset.Cell, len(body))}
	}
	nonEmpty := make([]int, len(cols))
	labels := make([][]string, len(cols))
	for j := range labels {
		labels[j] = make([]string, len(body))
	}
	for r, rec := range body {
		for j := range cols {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			if v == "" {
				cols[j].Cells[r] = dataset.MissingCell()
				continue
			}
			nonEmpty[j]++
			ref, _ := excelize.CoordinatesToCellName(j+1, r+2)
			ct, err := f.GetCellType(sheet, ref)
			if err != nil {
				ct = excelize.CellTypeUnset
			}
			if ct == excelize.CellTypeBool {
				x, label := boolValue(v)
				cols[j].Cells[r] = dataset.NumberCell(x)
				labels[j][r] = label
				continue
			}
			if x, ok := storedNumber(ct, v); ok {
				if label, isDate := dates.label(sheet, ref, x); isDate {
					cols[j].Storage = dataset.Text
					cols[j].Cells[r] = dataset.TextCell(label)
					continue
				}
				cols[j].Cells[r] = dataset.NumberCell(x)
				labels[j][r] = v
				continue
			}
			cols[j].Storage = dataset.Text
			cols[j].Cells[r] = dataset.TextCell(v)
		}
	}
	for j := range cols {
		if cols[j].Storage == dataset.Text {
			// a text column shows its numbers as labels, not as floats
			for r, c := range cols[j].Cells {
				if c.IsNum {
					label := labels[j][r]
					if label == "" {
						label = c.Display()
					}
					cols[j].Cells[r] = dataset.TextCell(label)
				}
			}
		}
		if nonEmpty[j] == 0 {
			cols[j].Storage = dataset.Text
		}
	}
	return dataset.New(filepath.Base(path), cols)
}

func storedNumber(ct excelize.CellType, v string) (float64, bool) {
	switch ct {
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeFormula:
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return x, true
	default:
		return 0, false
	}
}

// boolValue maps a stored boolean to 1/0 and the label it shows in a text
// column.
func boolValue(v string) (float64, string) {
	if v == "1" || strings.EqualFold(v, "true") {
		return 1, "True"
	}
	return 0, "False"
}

// dateFormats resolves whether a numeric cell is displayed as a date,
// caching the answer per style index.
type dateFormats struct {
	f        *excelize.File
	date1904 bool
	byStyle  map[int]bool
}

func newDateFormats(f *excelize.File) *dateFormats {
	d := &dateFormats{f: f, byStyle: map[int]bool{}}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

// label returns the date text for a numeric cell when its style carries a
// date or time number format.
func (d *dateFormats) label(sheet, ref string, x float64) (string, bool) {
	idx, err := d.f.GetCellStyle(sheet, ref)
	if err != nil || idx == 0 {
		return "", false
	}
	isDate, ok := d.byStyle[idx]
	if !ok {
		if st, err := d.f.GetStyle(idx); err == nil && st != nil {
			isDate = isDateFormat(st.NumFmt, st.CustomNumFmt)
		}
		d.byStyle[idx] = isDate
	}
	if !isDate {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(x, d.date1904)
	if err != nil {
		return "", false
	}
	return dateLabel(x, t), true
}

func dateLabel(x float64, t time.Time) string {
	switch {
	case x >= 0 && x < 1:
		return t.Format("15:04:05")
	case t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0:
		return t.Format("2006-01-02")
	default:
		return t.Format("2006-01-02 15:04:05")
	}
}

// isDateFormat reports built-in date and time formats (including the
// East Asian ones) and custom codes with date or time tokens.
func isDateFormat(id int, custom *string) bool {
	switch {
	case id >= 14 && id <= 22, id >= 45 && id <= 47, id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	}
	if custom == nil {
		return false
	}
	return hasDateToken(*custom)
}

func hasDateToken(code string) bool {
	section, _, _ := strings.Cut(code, ";")
	inQuote, inBracket, escaped := false, false, false
	for _, r := range strings.ToLower(section) {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			if r == ']' {
				inBracket = false
			}
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		case strings.ContainsRune("ymdhs", r):
			return true
		}
	}
	return false
}

func resolveSheet(f *excelize.File, path string, opt Options) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("no sheets found in %s", filepath.Base(path))
	}
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
			opt.SheetName, filepath.Base(path), strings.Join(sheets, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))
	}
	return sheets[idx-1], nil
}

// SheetNames lists the sheets of an XLSX workbook in order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}
