// Package report assembles analysis results into Markdown and HTML.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/russross/blackfriday/v2"
)

const BAR_WIDTH = 40

// Builder accumulates a Markdown document.
type Builder struct {
	title string
	sb    strings.Builder
}

func NewBuilder(title string) *Builder {
	b := &Builder{title: title}
	fmt.Fprintf(&b.sb, "# %s\n\n", title)
	return b
}

func (b *Builder) Section(title string) {
	fmt.Fprintf(&b.sb, "## %s\n\n", title)
}

func (b *Builder) Subsection(title string) {
	fmt.Fprintf(&b.sb, "### %s\n\n", title)
}

func (b *Builder) Paragraph(format string, args ...any) {
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteString("\n\n")
}

// Bullets writes a list; an empty list writes nothing.
func (b *Builder) Bullets(items []string) {
	if len(items) == 0 {
		return
	}
	for _, item := range items {
		fmt.Fprintf(&b.sb, "- %s\n", item)
	}
	b.sb.WriteString("\n")
}

// Quote writes text as a block quote, one quoted line per input line.
func (b *Builder) Quote(text string) {
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(&b.sb, "> %s\n", line)
	}
	b.sb.WriteString("\n")
}

// Error notes an analysis that could not run without failing the report.
func (b *Builder) Error(err error) {
	fmt.Fprintf(&b.sb, "> **Error:** %s\n\n", err)
}

func (b *Builder) Table(header []string, rows [][]string) {
	if len(rows) == 0 {
		b.Paragraph("_No data._")
		return
	}

	b.sb.WriteString("|")
	for _, h := range header {
		fmt.Fprintf(&b.sb, " %s |", Cell(h))
	}
	b.sb.WriteString("\n|")
	for range header {
		b.sb.WriteString(" --- |")
	}
	b.sb.WriteString("\n")

	for _, row := range rows {
		b.sb.WriteString("|")
		for _, c := range row {
			fmt.Fprintf(&b.sb, " %s |", Cell(c))
		}
		b.sb.WriteString("\n")
	}
	b.sb.WriteString("\n")
}

func (b *Builder) Markdown() string {
	return b.sb.String()
}

// HTML renders the document as a complete HTML page.
func (b *Builder) HTML() []byte {
	return RenderHTML(b.Markdown(), b.title)
}

// REPORT_HTML_FLAGS drop raw HTML, images and non-web links. Report text
// quotes posts verbatim, so none of it may become markup or script.
const REPORT_HTML_FLAGS = blackfriday.CompletePage | blackfriday.CommonHTMLFlags |
	blackfriday.SkipHTML | blackfriday.SkipImages | blackfriday.Safelink |
	blackfriday.NofollowLinks | blackfriday.NoreferrerLinks

func RenderHTML(markdown, title string) []byte {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Title: title,
		Flags: REPORT_HTML_FLAGS,
	})
	return blackfriday.Run([]byte(markdown),
		blackfriday.WithExtensions(blackfriday.CommonExtensions),
		blackfriday.WithRenderer(renderer))
}

// Cell makes s safe inside a table cell.
func Cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// Float formats v with two decimals, or "n/a" when it is undefined.
func Float(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Bar draws v relative to top as a run of block characters.
func Bar(v, top float64, width int) string {
	if top <= 0 || v <= 0 || math.IsNaN(v) {
		return ""
	}
	n := int(math.Round(v / top * float64(width)))
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", min(n, width))
}
