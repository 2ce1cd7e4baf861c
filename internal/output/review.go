package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"

	"laravel-migration/internal/engine"
)

var phpLexer = newPHPLexer()

func newPHPLexer() chroma.Lexer {
	l := lexers.Get("php")
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

// HighlightPHP colors migration source for the terminal. The text is
// returned unchanged when colors are off or tokenising fails.
func HighlightPHP(src string) string {
	if !colorEnabled {
		return src
	}
	iter, err := phpLexer.Tokenise(nil, src)
	if err != nil {
		return src
	}

	var b strings.Builder
	b.Grow(len(src) * 2)
	for _, tok := range iter.Tokens() {
		if tok.Value == "" {
			continue
		}
		style, ok := tokenStyle(tok.Type)
		if !ok {
			b.WriteString(tok.Value)
			continue
		}
		// newlines stay unstyled so lines do not carry escape codes over
		lines := strings.Split(tok.Value, "\n")
		for i, line := range lines {
			if line != "" {
				b.WriteString(style.Render(line))
			}
			if i < len(lines)-1 {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

func tokenStyle(tt chroma.TokenType) (lipgloss.Style, bool) {
	switch {
	case tt.InCategory(chroma.Keyword):
		return styleKeyword, true
	case tt.InSubCategory(chroma.LiteralString):
		return styleString, true
	case tt.InSubCategory(chroma.LiteralNumber):
		return styleNumber, true
	case tt.InCategory(chroma.Comment):
		return styleComment, true
	case tt == chroma.NameVariable:
		return styleVariable, true
	case tt == chroma.NameFunction || tt == chroma.NameClass:
		return styleFunction, true
	}
	return lipgloss.Style{}, false
}

// WriteReview prints every schema of the session: its migrations in
// emission order, followed by its advisories.
func WriteReview(w io.Writer, sess *engine.Session) {
	review := sess.Review()
	for _, r := range sess.Results {
		text, ok := review[r.Schema]
		if !ok {
			continue
		}
		fmt.Fprintln(w, Header(fmt.Sprintf("Review migrations for '%s' schema:", r.Schema)))
		fmt.Fprintln(w, HighlightPHP(text))

		if r.Cycle != nil {
			fmt.Fprintf(w, "%s tables kept in input order, unresolved: %s\n",
				Warning("warning:"), strings.Join(r.Cycle.Tables, ", "))
		}
		for _, a := range r.Advisories {
			fmt.Fprintf(w, "%s table `%s`: %s\n", Warning("note:"), a.Table, a.Message)
		}
	}
}

// IndexSizeNotice is the consolidated notification for index size
// warnings, or "" when there are none.
func IndexSizeNotice(warnings []engine.IndexSizeWarning) string {
	if len(warnings) == 0 {
		return ""
	}
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}

	var b strings.Builder
	b.WriteString("The following UNIQUE indexes may cause errors in Laravel:\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nSuggestions:\n")
	b.WriteString("- Reduce the size of the VARCHAR (e.g., `VARCHAR(191)`)\n")
	b.WriteString("- Configure `Schema::defaultStringLength(191);` in Laravel.\n")
	b.WriteString("- Use another collation (`utf8` instead of `utf8mb4`).")
	return b.String()
}

// WriteIndexSizeNotice prints the notice under a warning header.
func WriteIndexSizeNotice(w io.Writer, warnings []engine.IndexSizeWarning) {
	notice := IndexSizeNotice(warnings)
	if notice == "" {
		return
	}
	fmt.Fprintln(w, Warning("Warning: Invalid Index Size"))
	fmt.Fprintln(w, notice)
	fmt.Fprintln(w)
}
