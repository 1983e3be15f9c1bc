package feed

import (
	"regexp"
	"strings"
)

// The source bodies are MDX: markdown plus ESM module syntax and
// embedded components. None of that survives conversion to plain feed
// HTML, so it is stripped line/tag-wise before the markdown pass.
//
// This is a best-effort text transform, not a parser: nested
// same-named components and tags with multiline attributes can slip
// through. That limitation is accepted; see the absolutizer and
// generator for the rest of the feed pipeline.
var (
	importLineRE = regexp.MustCompile(`(?m)^import\s+[^\n]*$`)
	exportLineRE = regexp.MustCompile(`(?m)^export\s+[^\n]*$`)

	tocInlineRE = regexp.MustCompile(`<TOCInline[^>]*/?>`)

	imageSelfRE  = regexp.MustCompile(`<Image([^>]*)/>`)
	imageOpenRE  = regexp.MustCompile(`<Image([^>]*)>`)
	imageCloseRE = regexp.MustCompile(`</Image>`)

	componentSelfRE = regexp.MustCompile(`<[A-Z][A-Za-z0-9]*[^>]*/>`)
	componentOpenRE = regexp.MustCompile(`<([A-Z][A-Za-z0-9]*)[^>]*>`)

	blankLinesRE = regexp.MustCompile(`\n{3,}`)
)

// Sanitize removes MDX-specific constructs from a raw post body so the
// remainder is plain markdown: import/export lines, the TOC
// placeholder, custom components (tag names starting with an uppercase
// letter). Image components become plain img tags, attributes carried
// over as-is.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	out := raw
	out = importLineRE.ReplaceAllString(out, "")
	out = exportLineRE.ReplaceAllString(out, "")
	out = tocInlineRE.ReplaceAllString(out, "")
	out = imageSelfRE.ReplaceAllString(out, "<img$1/>")
	out = imageOpenRE.ReplaceAllString(out, "<img$1>")
	out = imageCloseRE.ReplaceAllString(out, "")
	out = componentSelfRE.ReplaceAllString(out, "")
	out = stripPairedComponents(out)
	out = blankLinesRE.ReplaceAllString(out, "\n\n")
	return out
}

// stripPairedComponents drops <Foo ...>...</Foo> spans. RE2 has no
// backreferences, so the close tag is located by name per match; an
// opening tag without a close is left alone.
func stripPairedComponents(s string) string {
	from := 0
	for {
		loc := componentOpenRE.FindStringSubmatchIndex(s[from:])
		if loc == nil {
			return s
		}
		start := from + loc[0]
		end := from + loc[1]
		name := s[from+loc[2] : from+loc[3]]

		closeTag := "</" + name + ">"
		ci := strings.Index(s[end:], closeTag)
		if ci < 0 {
			from = end
			continue
		}
		s = s[:start] + s[end+ci+len(closeTag):]
		from = start
	}
}
