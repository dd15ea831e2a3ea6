package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"scoutIO/business/selector"
	"scoutIO/domain"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

func badges(c domain.Candidate) string {
	cats := selector.Classify(c)

	var out []string
	if cats.LowestPrice {
		out = append(out, "deal")
	}
	if cats.HighReview {
		out = append(out, "top rated")
	}
	if cats.FastShipping {
		out = append(out, "fast")
	}
	if cats.HighQuality {
		out = append(out, "quality")
	}
	return strings.Join(out, ", ")
}

func renderCandidates(w io.Writer, title string, candidates []domain.Candidate) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "no alternatives")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"#", "ID", "Name", "Price", "Was", "Rating", "Shipping", "Badges"})

	for i, c := range candidates {
		was := "-"
		if c.OldPrice != nil {
			was = fmt.Sprintf("%.2f", *c.OldPrice)
		}
		rating := "-"
		if c.Rating != nil {
			rating = fmt.Sprintf("%.1f", *c.Rating)
		}
		t.AppendRow(table.Row{
			i + 1,
			string(c.ID),
			c.Name,
			fmt.Sprintf("%.2f", c.Price),
			was,
			rating,
			c.ShippingLabel,
			badges(c),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
