package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

const (
	nameColumnWidth = 16
	cellColumnWidth = 18
)

// ViewRosterCmd creates the viewRoster command
func ViewRosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewRoster <start> <end>",
		Short: "Show the roster grid between two dates",
		Long: `Show the roster grid between two dates. Manual entries are shown in bold,
generated entries in green. Dates covered by a confirmed cycle are marked with 🔒.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}
			plain, _ := cmd.Flags().GetBool("plain")

			view, err := services.ViewRoster(app.Ctx, app.Database, app.RestDays, app.Logger, start, end)
			if err != nil {
				return err
			}

			fmt.Print(renderRoster(view, !plain))
			return nil
		},
	}

	cmd.Flags().Bool("plain", false, "Disable colour output")
	return cmd
}

// renderRoster lays the view out as a text table with one column per date
func renderRoster(view *services.RosterView, color bool) string {
	paint := func(code, text string) string {
		if !color {
			return text
		}
		return code + text + colorReset
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n📅 Roster %s\n\n", view.Range)

	b.WriteString(pad("Staff", nameColumnWidth))
	for _, date := range view.Dates {
		header := date.Format("Mon 02 Jan")
		if view.IsLocked(date) {
			header += " 🔒"
		}
		b.WriteString(" " + paint(colorBold, pad(header, cellColumnWidth)))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", nameColumnWidth+len(view.Dates)*(cellColumnWidth+1)))
	b.WriteString("\n")

	for _, row := range view.Rows {
		b.WriteString(pad(row.Staff.Name, nameColumnWidth))
		for i, cell := range row.Cells {
			date := view.Dates[i]
			text := pad(view.CellText(date, cell), cellColumnWidth)
			switch {
			case view.IsClosed(date):
				text = paint(colorRed, text)
			case cell.Record.Station.IsManual() || cell.Record.Roles.IsManual():
				text = paint(colorBold, text)
			case cell.Record.Station.IsGenerated() || cell.Record.Roles.IsGenerated():
				text = paint(colorGreen, text)
			}
			b.WriteString(" " + text)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(view.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range view.Events {
			fmt.Fprintf(&b, "  • %s %s", model.FormatDate(event.Date), event.Type)
			if event.Note != "" {
				fmt.Fprintf(&b, " - %s", event.Note)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pad truncates or right-pads s to width runes
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
