package views

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

func formatDurationSince(now, t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	if d < 0 {
		return "in the future"
	}
	if d < time.Minute {
		return fmt.Sprintf("%d seconds ago", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	}
	return fmt.Sprintf("%d days ago", int(d.Hours()/24))
}

// highlightGo renders Go source with syntax highlighting
func highlightGo(source string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lexer := lexers.Get("go")
		if lexer == nil {
			lexer = lexers.Fallback
		}

		formatter, style := chromaFormatterAndStyle()

		iterator, err := lexer.Tokenise(nil, source)
		if err != nil {
			return err
		}

		return formatter.Format(w, style, iterator)
	})
}

func chromaFormatterAndStyle() (*html.Formatter, *chroma.Style) {
	formatter := html.New(
		html.Standalone(false),
		html.WithClasses(true),
		html.TabWidth(4),
	)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}

	return formatter, style
}

func chromaStyles() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<style>")
		formatter, style := chromaFormatterAndStyle()
		err := formatter.WriteCSS(w, style)

		_, _ = io.WriteString(w, ".chroma { white-space: pre-wrap; }\n")
		_, _ = io.WriteString(w, "</style>")
		return err
	})
}
