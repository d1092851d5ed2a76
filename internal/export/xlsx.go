// Package export renders report documents to .xlsx workbooks.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/KaramelBytes/colprofile-cli/internal/report"
	"github.com/KaramelBytes/colprofile-cli/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ErrOutputTarget is matched by errors.Is for any OutputTargetError.
var ErrOutputTarget = errors.New("output target not writable")

// OutputTargetError reports a report that could not be written to Path.
type OutputTargetError struct {
	Path string
	Err  error
}

func (e *OutputTargetError) Error() string {
	return fmt.Sprintf("cannot write report to %s: %v", e.Path, e.Err)
}

func (e *OutputTargetError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrOutputTarget while Unwrap exposes the cause.
func (e *OutputTargetError) Is(target error) bool { return target == ErrOutputTarget }

// Options controls rendering.
type Options struct {
	// Logger receives per-sheet debug output. Nil discards.
	Logger logrus.FieldLogger
	// ReportID is stamped into the workbook properties. Empty generates one.
	ReportID string
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Render converts doc into an in-memory workbook. Sheets keep document
// order. The caller owns the returned file and must Close it.
func Render(doc *report.Document, opt Options) (*excelize.File, error) {
	if len(doc.Sheets) == 0 {
		return nil, errors.New("render: document has no sheets")
	}
	log := opt.logger()
	f := excelize.NewFile()
	styles := newStyleCache(f)

	for i, s := range doc.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("rename sheet %q: %w", s.Name, err)
			}
			continue
		}
		if _, err := f.NewSheet(s.Name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create sheet %q: %w", s.Name, err)
		}
	}
	for _, s := range doc.Sheets {
		if err := renderSheet(f, styles, s); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("sheet %q: %w", s.Name, err)
		}
		log.WithFields(logrus.Fields{
			"sheet":  s.Name,
			"cells":  len(s.Cells()),
			"charts": len(s.Charts),
		}).Debug("rendered sheet")
	}
	f.SetActiveSheet(0)

	id := opt.ReportID
	if id == "" {
		id = uuid.NewString()
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:      "Analysis: " + doc.Title,
		Creator:    "colprofile",
		Identifier: id,
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("set doc props: %w", err)
	}
	return f, nil
}

func renderSheet(f *excelize.File, styles *styleCache, s *report.Sheet) error {
	for _, c := range s.Cells() {
		var v any = c.Text
		if c.Kind == report.CellNumber {
			v = c.Num
		}
		if err := f.SetCellValue(s.Name, c.Ref, v); err != nil {
			return fmt.Errorf("set %s: %w", c.Ref, err)
		}
		if c.Style != report.StyleNone || c.Format != report.General {
			id, err := styles.id(c.Style, c.Format)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(s.Name, c.Ref, c.Ref, id); err != nil {
				return fmt.Errorf("style %s: %w", c.Ref, err)
			}
		}
		if c.Link != "" {
			if err := f.SetCellHyperLink(s.Name, c.Ref, locationLink(c.Link), "Location"); err != nil {
				return fmt.Errorf("link %s: %w", c.Ref, err)
			}
		}
	}
	for _, m := range s.Merges {
		from, to, _ := strings.Cut(m, ":")
		if err := f.MergeCell(s.Name, from, to); err != nil {
			return fmt.Errorf("merge %s: %w", m, err)
		}
	}
	for _, w := range s.Widths() {
		if err := f.SetColWidth(s.Name, w.Column, w.Column, w.Width); err != nil {
			return fmt.Errorf("width %s: %w", w.Column, err)
		}
	}
	for _, ch := range s.Charts {
		if err := f.AddChart(s.Name, ch.Anchor, toChart(ch)); err != nil {
			return fmt.Errorf("chart %q at %s: %w", ch.Title, ch.Anchor, err)
		}
	}
	return nil
}

var (
	plainSheetName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	// names that parse as A1 or R1C1 references must be quoted
	cellLikeName = regexp.MustCompile(`^(?i:[A-Z]{1,3}[0-9]+|R[0-9]*C[0-9]*|R[0-9]*|C[0-9]*)$`)
)

// locationLink turns "#Sheet!A1" into an in-workbook location, quoting the
// sheet name when it needs it.
func locationLink(target string) string {
	sheet := report.LinkSheet(target)
	cell := strings.TrimPrefix(strings.TrimPrefix(target, "#"), sheet+"!")
	if !plainSheetName.MatchString(sheet) || cellLikeName.MatchString(sheet) {
		sheet = "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	}
	return sheet + "!" + cell
}

// WriteXLSX renders doc and writes it atomically to path. Any failure to
// produce the file is returned as *OutputTargetError.
func WriteXLSX(doc *report.Document, path string, opt Options) error {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return &OutputTargetError{Path: path, Err: errors.New("is a directory")}
	}
	f, err := Render(doc, opt)
	if err != nil {
		return err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return &OutputTargetError{Path: path, Err: fmt.Errorf("encode workbook: %w", err)}
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return &OutputTargetError{Path: path, Err: err}
	}
	opt.logger().WithFields(logrus.Fields{
		"path":   path,
		"sheets": len(doc.Sheets),
		"bytes":  buf.Len(),
	}).Debug("wrote report")
	return nil
}
