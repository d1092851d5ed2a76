package report

import (
	"fmt"
	"strings"
)

// MaxSheetNameLen is the spreadsheet limit on sheet name length.
const MaxSheetNameLen = 31

const (
	IndexSheet          = "Index"
	VisualizationsSheet = "Visualizations"
)

// historySheet is reserved by Excel for change tracking.
const historySheet = "History"

var sheetNameReplacer = strings.NewReplacer(
	"[", "_", "]", "_", ":", "_", "*", "_", "?", "_", "/", "_", `\`, "_",
)

// SanitizeSheetName replaces characters spreadsheets reject in sheet names
// with "_" and truncates to MaxSheetNameLen characters. It is idempotent.
func SanitizeSheetName(name string) string {
	return truncateRunes(sheetNameReplacer.Replace(name), MaxSheetNameLen)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// sheetNamer hands out unique sanitized names for one document. Comparison
// is case-insensitive, as spreadsheet applications treat "Age" and "AGE" as
// the same sheet.
type sheetNamer struct {
	used map[string]bool
}

func newSheetNamer(reserved ...string) *sheetNamer {
	n := &sheetNamer{used: map[string]bool{strings.ToLower(historySheet): true}}
	for _, r := range reserved {
		n.used[strings.ToLower(r)] = true
	}
	return n
}

// next sanitizes name and, on collision, appends "_2", "_3", ... trimming the
// base so the result still fits.
func (n *sheetNamer) next(name string) string {
	base := SanitizeSheetName(name)
	// Sheet names may not begin or end with an apostrophe.
	if strings.HasPrefix(base, "'") {
		base = "_" + strings.TrimPrefix(base, "'")
	}
	if strings.HasSuffix(base, "'") {
		base = strings.TrimSuffix(base, "'") + "_"
	}
	if base == "" {
		base = "Sheet"
	}
	cand := base
	for i := 2; n.used[strings.ToLower(cand)]; i++ {
		suffix := fmt.Sprintf("_%d", i)
		cand = truncateRunes(base, MaxSheetNameLen-len(suffix)) + suffix
	}
	n.used[strings.ToLower(cand)] = true
	return cand
}
