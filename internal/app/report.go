package app

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"labelpc/internal/cli"
	"labelpc/internal/config"
	pkgstrings "labelpc/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteReport renders the effective configuration as a KEY, VALUE, SOURCE
// table. Section fields appear as dotted keys.
func WriteReport(w io.Writer, effective *config.Effective, filename string, output cli.OutputTarget) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("KEY"),
		text.FgHiCyan.Sprint("VALUE"),
		text.FgHiCyan.Sprint("SOURCE"),
	})

	for _, key := range effective.Keys() {
		source := string(effective.Source(key))

		if section := effective.Section(key); section != nil {
			fields := make([]string, 0, len(section))
			for field := range section {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				t.AppendRow(table.Row{key + "." + field, formatValue(section[field]), source})
			}
			continue
		}
		value, _ := effective.Get(key)
		t.AppendRow(table.Row{key, formatValue(value), source})
	}

	t.Render()

	if filename == "" {
		filename = "-"
	}
	_, err := fmt.Fprintf(w, "%s %s\n%s %s\n",
		text.FgHiBlue.Sprint("Filename:"), filename,
		text.FgHiBlue.Sprint("Output:"), output)
	return err
}

func formatValue(v interface{}) string {
	var s string
	switch t := v.(type) {
	case nil:
		s = "null"
	case []string:
		s = "[" + strings.Join(t, ", ") + "]"
	case map[string][]string:
		patterns := make([]string, 0, len(t))
		for p := range t {
			patterns = append(patterns, p)
		}
		sort.Strings(patterns)
		parts := make([]string, 0, len(t))
		for _, p := range patterns {
			parts = append(parts, fmt.Sprintf("%s: [%s]", p, strings.Join(t[p], ", ")))
		}
		s = "{" + strings.Join(parts, ", ") + "}"
	default:
		s = fmt.Sprintf("%v", t)
	}
	return pkgstrings.Cell(s, pkgstrings.MaxCellWidth)
}
