// Package output renders report records for a terminal.
package output

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/cyra/proxylog-report/internal/report"
)

// RenderTable writes records to w as a text table.
func RenderTable(w io.Writer, records []report.Record) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Time", "Method", "URL", "Count"})
	t.SetAutoWrapText(false)
	t.SetRowLine(false)

	for _, r := range records {
		t.Append([]string{
			r.LastSeenDisplay,
			string(r.Method),
			r.URLDisplay,
			strconv.Itoa(r.Count),
		})
	}
	t.Render()
}
