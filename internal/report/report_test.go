package report

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/KaramelBytes/colprofile-cli/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quantCol(name string, distinct int) profile.ColumnProfile {
	q := &profile.QuantitativeProfile{Count: distinct, Min: 1, Max: float64(distinct), Mean: 2, P25: 1, P50: 2, P75: 3, Sum: 10, PercentOfGrandTotal: 100}
	for i := 0; i < distinct; i++ {
		q.Frequency = append(q.Frequency, profile.FrequencyRow{Value: float64(i + 1), Frequency: 1, PctOfCount: 100 / float64(distinct)})
	}
	return profile.ColumnProfile{Name: name, Kind: profile.Quantitative, Quantitative: q}
}

func qualCol(name string, categories int) profile.ColumnProfile {
	q := profile.QualitativeProfile{}
	for i := 0; i < categories; i++ {
		q = append(q, profile.CategoryRow{Label: fmt.Sprintf("c%d", i), Frequency: 1, PctOfCount: 100 / float64(categories)})
	}
	return profile.ColumnProfile{Name: name, Kind: profile.Qualitative, Qualitative: q}
}

func TestSanitizeSheetName(t *testing.T) {
	cases := []string{
		"Age",
		"a[b]c:d*e?f/g\\h",
		strings.Repeat("x", 40),
		"日本語の列名がとても長い場合でもちゃんと三十一文字に切り詰められるかどうか",
		"",
	}
	for _, in := range cases {
		out := SanitizeSheetName(in)
		assert.LessOrEqual(t, utf8.RuneCountInString(out), MaxSheetNameLen, in)
		assert.False(t, strings.ContainsAny(out, `[]:*?/\`), in)
		assert.Equal(t, out, SanitizeSheetName(out), "idempotent for %q", in)
	}
	assert.Equal(t, "a_b_c_d_e_f_g_h", SanitizeSheetName("a[b]c:d*e?f/g\\h"))
	assert.Equal(t, strings.Repeat("x", 31), SanitizeSheetName(strings.Repeat("x", 40)))
}

func TestSheetNamer_Disambiguates(t *testing.T) {
	n := newSheetNamer(IndexSheet, VisualizationsSheet)
	long := strings.Repeat("y", 35)
	assert.Equal(t, strings.Repeat("y", 31), n.next(long))
	second := n.next(long + "z")
	assert.Equal(t, strings.Repeat("y", 29)+"_2", second)
	assert.Equal(t, "index_2", n.next("index"))
	assert.Equal(t, "Sheet", n.next(""))
	assert.Equal(t, "_quoted_", n.next("'quoted'"))
	assert.Equal(t, "history_2", n.next("history"))
}

func TestBuild_UngroupedLayout(t *testing.T) {
	res := profile.Result{Source: "t.csv", Rows: 4, Columns: []profile.ColumnProfile{
		quantCol("Age", 3),
		qualCol("Dept", 2),
	}}
	doc := Build(res, DefaultOptions())
	assert.Equal(t, []string{"Index", "Visualizations", "Age", "Dept"}, doc.SheetNames())

	index, ok := doc.Sheet(IndexSheet)
	require.True(t, ok)
	c, _ := index.Cell("A1")
	assert.Equal(t, "Analysis Results - Column Index", c.Text)
	assert.Contains(t, index.Merges, "A1:D1")
	c, _ = index.Cell("D2")
	assert.Equal(t, "Link", c.Text)
	c, _ = index.Cell("C3")
	assert.Equal(t, "QUANTITATIVE", c.Text)
	c, _ = index.Cell("D4")
	assert.Equal(t, "#Dept!A1", c.Link)
	assert.Equal(t, StyleLink, c.Style)

	age, _ := doc.Sheet("Age")
	c, _ = age.Cell("A1")
	assert.Equal(t, "Analysis: Age", c.Text)
	c, _ = age.Cell("A12")
	assert.Equal(t, "% of Total", c.Text)
	c, _ = age.Cell("B12")
	assert.Equal(t, "100.00%", Display(c))
	c, _ = age.Cell("A15")
	assert.Equal(t, "Frequency Distribution", c.Text)
	c, _ = age.Cell("A16")
	assert.Equal(t, "Value", c.Text)
	c, _ = age.Cell("A17")
	assert.Equal(t, CellNumber, c.Kind)
	assert.Equal(t, 1.0, c.Num)
	c, _ = age.Cell("G14")
	assert.Equal(t, "Box Plot Data", c.Text)

	require.Len(t, age.Charts, 2)
	assert.Equal(t, ChartColumn, age.Charts[0].Kind)
	assert.Equal(t, "G15", age.Charts[0].Anchor)
	assert.Equal(t, "'Age'!$B$17:$B$19", age.Charts[0].DataRange)
	assert.Equal(t, "'Age'!$A$17:$A$19", age.Charts[0].CategoryRange)
	assert.Equal(t, ChartLine, age.Charts[1].Kind)
	assert.Equal(t, "V15", age.Charts[1].Anchor)

	viz, _ := doc.Sheet(VisualizationsSheet)
	require.Len(t, viz.Charts, 2)
	assert.Equal(t, "Age - Histogram", viz.Charts[0].Title)
	assert.Equal(t, "A6", viz.Charts[0].Anchor)
	assert.Equal(t, "I6", viz.Charts[1].Anchor)
	c, _ = viz.Cell("I5")
	assert.Equal(t, "Age - Distribution Density", c.Text)

	dept, _ := doc.Sheet("Dept")
	require.Len(t, dept.Charts, 1)
	assert.Equal(t, ChartPie, dept.Charts[0].Kind)
	assert.Equal(t, "E4", dept.Charts[0].Anchor)
	c, _ = dept.Cell("C5")
	assert.Equal(t, "50.00%", Display(c))
}

func TestBuild_TooManyValuesHasNoCharts(t *testing.T) {
	res := profile.Result{Columns: []profile.ColumnProfile{quantCol("Wide", 60)}}
	doc := Build(res, DefaultOptions())
	wide, ok := doc.Sheet("Wide")
	require.True(t, ok)
	assert.Empty(t, wide.Charts)
	c, ok := wide.Cell("A76")
	require.True(t, ok)
	assert.Equal(t, 60.0, c.Num)
	viz, _ := doc.Sheet(VisualizationsSheet)
	assert.Empty(t, viz.Charts)
}

func TestBuild_CategoryChartSelection(t *testing.T) {
	res := profile.Result{Columns: []profile.ColumnProfile{
		qualCol("TwentyOne", 21),
		qualCol("Twenty", 20),
		{Name: "None", Kind: profile.Qualitative},
	}}
	doc := Build(res, DefaultOptions())

	s, _ := doc.Sheet("TwentyOne")
	require.Len(t, s.Charts, 1)
	assert.Equal(t, ChartColumn, s.Charts[0].Kind)
	assert.Equal(t, "Category", s.Charts[0].XAxisTitle)

	s, _ = doc.Sheet("Twenty")
	require.Len(t, s.Charts, 1)
	assert.Equal(t, ChartPie, s.Charts[0].Kind)

	s, _ = doc.Sheet("None")
	assert.Empty(t, s.Charts)

	viz, _ := doc.Sheet(VisualizationsSheet)
	assert.Empty(t, viz.Charts)
}

func TestChartSlot(t *testing.T) {
	want := []struct{ label, anchor string }{
		{"A5", "A6"}, {"I5", "I6"}, {"Q5", "Q6"},
		{"A23", "A24"}, {"I23", "I24"}, {"Q23", "Q24"},
		{"A41", "A42"},
	}
	for i, w := range want {
		label, anchor := ChartSlot(i, 18)
		assert.Equal(t, w.label, label, "chart %d", i)
		assert.Equal(t, w.anchor, anchor, "chart %d", i)
	}
}

func TestBuild_GroupedLayout(t *testing.T) {
	res := profile.Result{
		GroupColumn: "Dept",
		Groups: []profile.GroupProfile{
			{Label: "Eng", RowCount: 2, Columns: []profile.ColumnProfile{quantCol("Salary", 2), qualCol("Level", 2)}},
			{Label: "HR/Ops", RowCount: 1, Columns: []profile.ColumnProfile{quantCol("Salary", 1)}},
		},
	}
	doc := Build(res, DefaultOptions())
	assert.Equal(t, []string{"Index", "Visualizations", "Eng_Salary", "Eng_Level", "HR_Ops_Salary"}, doc.SheetNames())

	index, _ := doc.Sheet(IndexSheet)
	c, _ := index.Cell("A1")
	assert.Equal(t, "Analysis Results - Grouped by Dept", c.Text)
	c, _ = index.Cell("A2")
	assert.Equal(t, "GROUP: Eng", c.Text)
	c, _ = index.Cell("A3")
	assert.Equal(t, "Salary", c.Text)
	c, _ = index.Cell("C4")
	assert.Equal(t, "#Eng_Level!A1", c.Link)
	c, _ = index.Cell("A6")
	assert.Equal(t, "GROUP: HR/Ops", c.Text)

	s, _ := doc.Sheet("HR_Ops_Salary")
	c, _ = s.Cell("A1")
	assert.Equal(t, "Analysis: HR/Ops - Salary", c.Text)

	viz, _ := doc.Sheet(VisualizationsSheet)
	require.Len(t, viz.Charts, 4)
	assert.Equal(t, "A24", viz.Charts[3].Anchor)
	assert.Equal(t, "HR/Ops - Salary - Distribution Density", viz.Charts[3].Title)
}

func TestBuild_LinksMatchSheetNames(t *testing.T) {
	long := strings.Repeat("L", 40)
	res := profile.Result{Columns: []profile.ColumnProfile{
		qualCol(long+"1", 1),
		qualCol(long+"2", 1),
		qualCol("a:b", 1),
	}}
	doc := Build(res, DefaultOptions())
	names := map[string]bool{}
	for _, n := range doc.SheetNames() {
		assert.False(t, names[n], "duplicate sheet %q", n)
		names[n] = true
	}
	index, _ := doc.Sheet(IndexSheet)
	links := 0
	for _, c := range index.Cells() {
		if c.Link == "" {
			continue
		}
		links++
		assert.True(t, names[LinkSheet(c.Link)], "dangling link %q", c.Link)
	}
	assert.Equal(t, 3, links)
}
