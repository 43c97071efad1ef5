package render

import (
	"strings"

	"github.com/komsit37/quotedash/pkg/dash/types"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
)

// NewsMarkdown renders the news list as one bullet per item:
// "- **[title](link)**: summary". It returns "" for no items.
func NewsMarkdown(items []types.NewsItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("### Recent News\n\n")
	for _, it := range items {
		b.WriteString("- **[")
		b.WriteString(mdEscaper.Replace(it.Title))
		b.WriteString("](<")
		b.WriteString(strings.NewReplacer("<", "%3C", ">", "%3E", " ", "%20").Replace(it.Link))
		b.WriteString(">)**: ")
		b.WriteString(mdEscaper.Replace(it.Summary))
		b.WriteString("\n")
	}
	return b.String()
}

// OverviewMarkdown renders the company overview section, or "" when the
// provider sent no business summary.
func OverviewMarkdown(s types.QuoteSnapshot) string {
	if !s.HasBusinessSummary {
		return ""
	}
	return "### Company Overview\n\n" + mdEscaper.Replace(s.BusinessSummary) + "\n"
}
