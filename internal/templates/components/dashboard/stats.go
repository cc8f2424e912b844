package dashboard

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Stats renders the admin summary cards.
func Stats(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var builder strings.Builder
		builder.WriteString(`<div id="dashboard-stats" class="grid gap-4 sm:grid-cols-2">`)
		builder.WriteString(statCard("Active teams", fmt.Sprintf("%d / %d", data.Teams.Active, data.Teams.Total)))
		builder.WriteString(statCard("Matches played", fmt.Sprintf("%d / %d", data.Matches.Played, data.Matches.Total)))
		builder.WriteString(statCard("Scheduled", fmt.Sprintf("%d", data.Matches.Scheduled)))
		for _, group := range data.Teams.ByGroup {
			builder.WriteString(statCard("Group "+group.Group, fmt.Sprintf("%d active", group.Active)))
		}
		builder.WriteString(`</div>`)
		_, err := io.WriteString(w, builder.String())
		return err
	})
}

func statCard(label, value string) string {
	return fmt.Sprintf(
		`<div class="rounded border bg-white p-4 shadow-sm"><div class="text-xs text-gray-500">%s</div><div class="text-2xl font-semibold">%s</div></div>`,
		html.EscapeString(label),
		html.EscapeString(value),
	)
}
