package main

import (
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableSpec describes a rounded go-pretty table. Footer cells are uppercased
// by the style.
type tableSpec struct {
	headers []string
	rows    [][]string
	// rightAligned lists zero-based column indexes aligned to the right.
	rightAligned []int
	footer       []string
}

func (s tableSpec) render() string {
	width := len(s.headers)
	if width == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(padRow(s.headers, width))
	for _, row := range s.rows {
		tw.AppendRow(padRow(row, width))
	}
	if len(s.footer) > 0 {
		tw.AppendFooter(padRow(s.footer, width))
	}

	configs := make([]table.ColumnConfig, width)
	for i := range configs {
		align := text.AlignLeft
		if slices.Contains(s.rightAligned, i) {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignFooter: align, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// padRow converts values to a table row of exactly width cells.
func padRow(values []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range row {
		row[i] = ""
		if i < len(values) {
			row[i] = values[i]
		}
	}
	return row
}
