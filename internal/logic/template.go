package logic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marswrapped/wrapped-api/internal/models"
)

// RenderString replaces every {{name}} token whose name is a key of vars.
// Names are [A-Za-z0-9_]+ and match case-sensitively. Unknown tokens are
// kept byte-for-byte and substituted text is never re-scanned.
func RenderString(s string, vars models.Vars) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(s) {
		open := strings.Index(s[i:], "{{")
		if open < 0 {
			b.WriteString(s[i:])
			break
		}
		open += i
		b.WriteString(s[i:open])

		nameStart := open + 2
		nameEnd := nameStart
		for nameEnd < len(s) && isIdentByte(s[nameEnd]) {
			nameEnd++
		}

		if nameEnd == nameStart || !strings.HasPrefix(s[nameEnd:], "}}") {
			// Not a token; emit one brace and rescan from the next byte so
			// "{{{name}}" still resolves the inner token.
			b.WriteByte('{')
			i = open + 1
			continue
		}

		tokenEnd := nameEnd + 2
		if v, ok := vars[s[nameStart:nameEnd]]; ok {
			b.WriteString(formatVar(v))
		} else {
			b.WriteString(s[open:tokenEnd])
		}
		i = tokenEnd
	}
	return b.String()
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func formatVar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// RenderSlide returns a copy of tmpl with title, subtitle and every auxiliary
// variable rendered. tmpl itself is never modified.
func RenderSlide(tmpl models.SlideTemplate, vars models.Vars) models.SlideTemplate {
	out := tmpl
	out.Title = RenderString(tmpl.Title, vars)
	if tmpl.Subtitle != "" {
		out.Subtitle = RenderString(tmpl.Subtitle, vars)
	}
	if tmpl.Variables != nil {
		out.Variables = make(map[string]string, len(tmpl.Variables))
		for k, v := range tmpl.Variables {
			out.Variables[k] = RenderString(v, vars)
		}
	}
	return out
}
