package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode json: %v\n", err)
		os.Exit(1)
	}
}

// formatTable prints a padded column layout with a dashed separator under
// the header. Column widths fit the widest cell.
func formatTable(headers []string, rows [][]string) {
	widths := columnWidths(headers, rows)

	var b strings.Builder
	writeRow(&b, headers, widths)

	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = strings.Repeat("-", widths[i])
	}
	writeRow(&b, sep, widths)

	for _, row := range rows {
		writeRow(&b, row, widths)
	}

	fmt.Print(b.String())
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		fmt.Fprintf(b, "%-*s", w, cell)
	}
	b.WriteByte('\n')
}

func formatQuiet(id string) {
	fmt.Println(id)
}

// output routes a generic value through the active --format. Table layout
// needs per-command columns, so commands call formatTable themselves and
// "table" falls back to JSON here.
func output(v any, quietVal string) {
	switch flagFmt {
	case "quiet":
		formatQuiet(quietVal)
	default:
		formatJSON(v)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
