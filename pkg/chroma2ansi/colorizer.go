// Package chroma2ansi renders chroma syntax highlighting as 24-bit ANSI terminal escapes.
package chroma2ansi

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const reset = "\x1b[0m"

var getStyle = styles.Get

var getFallbackStyle = func() *chroma.Style {
	return styles.Fallback
}

func Colorize(text, styleName string, lexer chroma.Lexer) (string, error) {
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", err
	}

	style := getStyle(styleName)
	if style == nil {
		style = getFallbackStyle()
	}

	var sb strings.Builder
	for _, token := range iterator.Tokens() {
		entry := style.Get(token.Type)
		if entry.IsZero() || !entry.Colour.IsSet() {
			sb.WriteString(token.Value)
			continue
		}
		c := entry.Colour
		_, _ = fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm", c.Red(), c.Green(), c.Blue())
		sb.WriteString(token.Value)
		sb.WriteString(reset)
	}

	return sb.String(), nil
}

// ColorizeFile picks a lexer by file name. Text with no matching lexer is returned unchanged.
func ColorizeFile(fileName, text, styleName string) (string, error) {
	lexer := lexers.Match(fileName)
	if lexer == nil {
		return text, nil
	}
	return Colorize(text, styleName, chroma.Coalesce(lexer))
}
