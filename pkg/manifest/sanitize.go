package manifest

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// StripHTML removes markup from registry free text. Product descriptions are
// authored in a rich text editor and frequently carry <p>, <br>, and inline
// styling that the driver manifest cannot display.
func StripHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	replaced := lineBreaks.Replace(trimmed)
	cleaned := html.UnescapeString(textSanitizer().Sanitize(replaced))
	return strings.TrimSpace(collapseBlankLines(cleaned))
}

var lineBreaks = strings.NewReplacer(
	"<br>", "\n", "<br/>", "\n", "<br />", "\n",
	"<BR>", "\n", "<BR/>", "\n", "<BR />", "\n",
	"</p>", "\n", "</P>", "\n",
)

func collapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
