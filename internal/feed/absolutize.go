package feed

import (
	"regexp"
	"strings"
)

var srcHrefRE = regexp.MustCompile(`(src|href)="([^"]*)"`)

// Absolutize rewrites root-relative src/href attribute values into
// fully-qualified URLs. Protocol-relative ("//...") and fragment-only
// ("#...") values pass through. Pure text rewrite, no HTML parsing;
// apply exactly once per document — a second application would prefix
// the already-absolute values again were they still root-relative,
// so callers must not re-run it.
func Absolutize(html, baseURL string) string {
	if html == "" {
		return html
	}
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return srcHrefRE.ReplaceAllStringFunc(html, func(m string) string {
		sub := srcHrefRE.FindStringSubmatch(m)
		attr, val := sub[1], sub[2]
		if !strings.HasPrefix(val, "/") || strings.HasPrefix(val, "//") {
			return m
		}
		return attr + `="` + base + val + `"`
	})
}
