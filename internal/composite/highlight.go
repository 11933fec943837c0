package composite

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/shahbajlive/mdskin/internal/style"
	"github.com/shahbajlive/mdskin/internal/styled"
)

// highlight splits code into chroma-colored tokens over base. Colors from
// the theme replace the foreground only, so the skin's code background is
// kept. Unknown languages or themes give a single plain token.
func (r *run) highlight(lang, code string, base style.Style) []Token {
	plain := []Token{styled.Tok(code, base)}
	theme := r.skin.CodeTheme()
	if !r.b.highlight || theme == "" {
		return plain
	}
	if fields := strings.Fields(lang); len(fields) > 0 {
		lang = fields[0]
	} else {
		return plain
	}

	chromaStyle, ok := styles.Registry[strings.ToLower(theme)]
	if !ok {
		r.b.loggerSafe().Debug("unknown code theme", "theme", theme)
		return plain
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return plain
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		r.b.loggerSafe().Debug("tokenise failed", "lang", lang, "error", err)
		return plain
	}

	var out []Token
	for tok := it(); tok != chroma.EOF; tok = it() {
		out = append(out, styled.Tok(tok.Value, themed(base, chromaStyle.Get(tok.Type))))
	}
	return out
}

func themed(base style.Style, e chroma.StyleEntry) style.Style {
	st := base
	if e.Colour.IsSet() {
		st.Fg = style.Color(e.Colour.String())
	}
	if e.Bold == chroma.Yes {
		st.Attrs |= style.Bold
	}
	if e.Italic == chroma.Yes {
		st.Attrs |= style.Italic
	}
	if e.Underline == chroma.Yes {
		st.Attrs |= style.Underline
	}
	return st
}
