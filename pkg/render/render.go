package render

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday"
)

var (
	headingOpenRe  = regexp.MustCompile(`<h[1-6][^>]*>`)
	headingCloseRe = regexp.MustCompile(`</h[1-6]>`)
)

// ToHTML converts Markdown into the HTML subset Telegram accepts
// (https://core.telegram.org/bots/api#html-style). Block elements Telegram
// does not understand are flattened into plain text with newlines.
func ToHTML(markdown string) string {
	html := string(blackfriday.MarkdownCommon([]byte(markdown)))

	html = headingOpenRe.ReplaceAllString(html, "<b>")
	html = headingCloseRe.ReplaceAllString(html, "</b>\n")

	replacer := strings.NewReplacer(
		"<p>", "",
		"</p>", "\n",
		"<strong>", "<b>",
		"</strong>", "</b>",
		"<em>", "<i>",
		"</em>", "</i>",
		"<del>", "<s>",
		"</del>", "</s>",
		"<ul>", "",
		"</ul>", "",
		"<ol>", "",
		"</ol>", "",
		"<li>", "• ",
		"</li>\n", "\n", // swallow the newline between list items
		"</li>", "\n",
		"<br>", "\n",
		"<br/>", "\n",
		"<br />", "\n",
		"<hr>", "\n",
		"<hr/>", "\n",
		"<hr />", "\n",
		"<blockquote>\n", "<blockquote>",
	)
	html = replacer.Replace(html)

	// <pre><code>...</code></pre> → <pre>...</pre>
	html = strings.ReplaceAll(html, "<pre><code>", "<pre>")
	html = strings.ReplaceAll(html, "</code></pre>", "</pre>")

	return strings.TrimSpace(html)
}
