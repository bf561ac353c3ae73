package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"wordsim/internal/similarity/model"
)

func renderPreview(pairs []model.Pair, limit int, original bool) string {
	if limit > len(pairs) {
		limit = len(pairs)
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"Row", "Token", "Row", "Token", "Similarity"})
	for _, p := range pairs[:limit] {
		a, b := p.TokenI, p.TokenJ
		if original {
			a, b = p.RawI, p.RawJ
		}
		tw.AppendRow(table.Row{
			strconv.Itoa(p.I), a,
			strconv.Itoa(p.J), b,
			fmt.Sprintf("%.2f%%", p.Similarity*100),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	if limit < len(pairs) {
		tw.AppendFooter(table.Row{"", "", "", "shown", fmt.Sprintf("%d of %d", limit, len(pairs))})
	}
	return tw.Render()
}
