package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/josephgoksu/OpsWing/internal/ui"
	"github.com/spf13/viper"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func isJSON() bool {
	return viper.GetString("format") == formatJSON
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

// render writes v as JSON under --format json, otherwise runs table.
func render(w io.Writer, v any, table func(io.Writer)) error {
	if isJSON() {
		return printJSON(w, v)
	}
	table(w)
	return nil
}

func printTable(w io.Writer, t *ui.Table) {
	if len(t.Rows) == 0 {
		fmt.Fprintln(w, ui.StyleSubtle.Render(" (none)"))
		return
	}
	if t.MaxWidth == 0 {
		t.MaxWidth = max(ui.TerminalWidth(120)/len(t.Headers), 12)
	}
	fmt.Fprint(w, t.Render())
}

func printSection(w io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, ui.StyleSectionTitle.Render(title))
	for _, l := range lines {
		fmt.Fprintf(w, "  • %s\n", l)
	}
	fmt.Fprintln(w)
}

func printField(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s %v\n", ui.StyleSubtle.Render(label+":"), value)
}

func pct(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64) + "%"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
