package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"flac2mp3/internal/config"
	"flac2mp3/internal/convert"
)

// renderPlanSummary formats a plan for --dry-run output: a few header
// lines, the entry table, and a closing count line.
func renderPlanSummary(plan *convert.Plan, settings *config.Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source: %s\n", plan.Source)
	if plan.Release != nil {
		fmt.Fprintf(&b, "Target: %s\n", plan.Release.TargetDir)
	}
	fmt.Fprintf(&b, "Mode:   %s\n\n", settings.Mode)

	b.WriteString(renderPlanTable(plan))
	b.WriteString("\n")

	converts, copies, skips := plan.Counts()
	fmt.Fprintf(&b, "%d to convert, %d to copy, %d skipped (dry run, nothing written)\n",
		converts, copies, skips)
	return b.String()
}

func renderPlanTable(plan *convert.Plan) string {
	rows := make([][]string, 0, len(plan.Entries))
	for i, entry := range plan.Entries {
		output := "(" + entry.Note + ")"
		if entry.Output != "" {
			output = filepath.Base(entry.Output)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			filepath.Base(entry.Source),
			entry.Action.String(),
			output,
		})
	}
	return renderTable([]string{"#", "ENTRY", "ACTION", "OUTPUT"}, rows, 0)
}

// renderTable draws headers and rows in a rounded box. Column indexes
// listed in rightAligned are right-aligned, everything else is left-aligned.
func renderTable(headers []string, rows [][]string, rightAligned ...int) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		for _, idx := range rightAligned {
			if idx == i {
				align = text.AlignRight
				break
			}
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
