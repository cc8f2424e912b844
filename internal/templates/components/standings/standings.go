package standings

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/districtpadel/league/internal/models"
)

const TableID = "standings-table"

// Page renders the heading, the group filter and the table.
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(`<div class="space-y-6">`)
		builder.WriteString(fmt.Sprintf(
			`<div class="flex items-center justify-between"><h1 class="text-2xl font-semibold">%s standings</h1>`,
			html.EscapeString(data.LeagueName),
		))
		builder.WriteString(`<select name="group" hx-get="/standings" hx-target="#` + TableID + `" hx-swap="outerHTML">`)
		for _, option := range data.Groups {
			selected := ""
			if option.Selected {
				selected = " selected"
			}
			builder.WriteString(fmt.Sprintf(`<option value="%s"%s>%s</option>`,
				html.EscapeString(option.Value), selected, html.EscapeString(option.Label)))
		}
		builder.WriteString(`</select></div>`)
		if _, err := io.WriteString(w, builder.String()); err != nil {
			return err
		}
		if err := Table(data.Rows).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Table renders the standings table alone; htmx swaps it in place.
func Table(rows []models.TeamStanding) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, buildTableHTML(rows))
		return err
	})
}

func buildTableHTML(rows []models.TeamStanding) string {
	if len(rows) == 0 {
		return `<div id="` + TableID + `" class="rounded border border-dashed p-6 text-center text-sm text-gray-500">No teams yet.</div>`
	}

	var builder strings.Builder
	builder.WriteString(`<table id="` + TableID + `" class="min-w-full text-sm"><thead><tr>`)
	for _, heading := range []string{"#", "Team", "Group", "P", "W", "L", "Sets", "Games", "Pts"} {
		builder.WriteString(`<th class="px-2 py-1 text-left font-medium text-gray-600">` + heading + `</th>`)
	}
	builder.WriteString(`</tr></thead><tbody>`)
	for _, row := range rows {
		builder.WriteString(fmt.Sprintf(
			`<tr data-team-id="%s"><td class="px-2 py-1">%d</td><td class="px-2 py-1 font-medium">%s</td><td class="px-2 py-1">%s</td><td class="px-2 py-1">%d</td><td class="px-2 py-1">%d</td><td class="px-2 py-1">%d</td><td class="px-2 py-1">%d:%d</td><td class="px-2 py-1">%d:%d</td><td class="px-2 py-1 font-semibold">%d</td></tr>`,
			html.EscapeString(row.TeamID),
			row.Position,
			html.EscapeString(row.TeamName),
			html.EscapeString(string(row.Group)),
			row.MatchesPlayed,
			row.MatchesWon,
			row.MatchesLost,
			row.SetsFor, row.SetsAgainst,
			row.GamesFor, row.GamesAgainst,
			row.Points,
		))
	}
	builder.WriteString(`</tbody></table>`)
	return builder.String()
}
