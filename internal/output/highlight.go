package output

import (
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const highlightStyle = "monokai"

// HighlightDiff renders a unified patch with ANSI colors for the terminal.
// Falls back to the plain text on any highlighting failure; a diff should
// never be lost to a rendering problem.
func HighlightDiff(patch string) string {
	if patch == "" || !ColorEnabled() {
		return patch
	}

	lexer := lexers.Get("diff")
	if lexer == nil {
		return patch
	}
	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return patch
	}

	iterator, err := lexer.Tokenise(nil, patch)
	if err != nil {
		return patch
	}
	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return patch
	}
	return b.String()
}

// HighlightDiffHTML renders a unified patch as standalone HTML with inline
// styles, for the web panel.
func HighlightDiffHTML(patch string) (string, error) {
	lexer := lexers.Get("diff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	formatter := html.New(html.WithLineNumbers(true), html.TabWidth(4))

	iterator, err := lexer.Tokenise(nil, patch)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return "", err
	}
	return b.String(), nil
}
