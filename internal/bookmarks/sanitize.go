package bookmarks

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/joestump/bookmarks/internal/store"
)

// allowedTags maps each permitted element to its permitted attributes.
// Anything else is rendered as escaped text.
var allowedTags = map[string]map[string]bool{
	"a":          {"href": true, "title": true, "target": true},
	"abbr":       {"title": true},
	"b":          {},
	"blockquote": {"cite": true},
	"br":         {},
	"code":       {},
	"del":        {},
	"div":        {},
	"em":         {},
	"h1":         {},
	"h2":         {},
	"h3":         {},
	"h4":         {},
	"h5":         {},
	"h6":         {},
	"hr":         {},
	"i":          {},
	"img":        {"src": true, "alt": true, "title": true, "width": true, "height": true},
	"ins":        {},
	"li":         {},
	"mark":       {},
	"ol":         {},
	"p":          {},
	"pre":        {},
	"s":          {},
	"small":      {},
	"span":       {},
	"strong":     {},
	"sub":        {},
	"sup":        {},
	"u":          {},
	"ul":         {},
}

var urlAttrs = map[string]bool{"href": true, "src": true, "cite": true}

var unsafeSchemes = []string{"javascript:", "vbscript:", "data:"}

// Sanitize returns a copy of b whose free-text fields are safe to render.
// ID, BookmarkURL and Rating are returned untouched.
func Sanitize(b store.Bookmark) store.Bookmark {
	b.Title = SanitizeHTML(b.Title)
	b.Descr = SanitizeHTML(b.Descr)
	return b
}

// SanitizeHTML neutralizes markup in s. Whitelisted tags survive with only
// their whitelisted attributes, other tags are entity-escaped, HTML comments
// are dropped. Applying it to its own output returns the output unchanged.
func SanitizeHTML(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	var out strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	consumed := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF && consumed < len(s) {
				// Truncated tag at end of input.
				out.WriteString(escapeAngles(s[consumed:]))
			}
			return out.String()
		}

		raw := string(z.Raw())
		consumed += len(raw)

		switch tt {
		case html.TextToken:
			out.WriteString(escapeAngles(raw))
		case html.CommentToken:
			// Real comments are dropped. Bogus ones such as <![CDATA[...]>
			// or <?xml ...> keep their text, escaped.
			if !strings.HasPrefix(raw, "<!--") {
				out.WriteString(escapeAngles(raw))
			}
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, hasAttr := z.TagName()
			attrs, ok := allowedTags[string(name)]
			if !ok {
				out.WriteString(escapeAngles(raw))
				continue
			}
			writeTag(&out, tt, string(name), attrs, z, hasAttr)
		default:
			out.WriteString(escapeAngles(raw))
		}
	}
}

func writeTag(out *strings.Builder, tt html.TokenType, name string, allowed map[string]bool, z *html.Tokenizer, hasAttr bool) {
	if tt == html.EndTagToken {
		out.WriteString("</" + name + ">")
		return
	}

	out.WriteString("<" + name)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		k := string(key)
		if !allowed[k] {
			continue
		}
		v := string(val)
		if urlAttrs[k] && !safeURL(v) {
			continue
		}
		if v == "" {
			out.WriteString(" " + k)
			continue
		}
		out.WriteString(" " + k + `="` + html.EscapeString(v) + `"`)
	}
	if tt == html.SelfClosingTagToken {
		out.WriteString(" />")
		return
	}
	out.WriteString(">")
}

// safeURL rejects script-bearing schemes. Browsers ignore whitespace and
// control characters inside a scheme, so those are removed before matching.
func safeURL(v string) bool {
	compact := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, strings.ToLower(v))
	for _, scheme := range unsafeSchemes {
		if strings.HasPrefix(compact, scheme) {
			return false
		}
	}
	return true
}

func escapeAngles(s string) string {
	return strings.NewReplacer("<", "&lt;", ">", "&gt;").Replace(s)
}
