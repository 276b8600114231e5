// Package richtext understands the small markup vocabulary the item API embeds in descriptions:
// <br>, <img>, classed <span>s and {g:citadel_binding:'Name'} keybind placeholders.
package richtext

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	reImg             = regexp.MustCompile(`(?i)<img\b`)
	reInlineAttribute = regexp.MustCompile(`(?i)<span\b[^>]*\bclass\s*=\s*["']([^"']*\s)?inline-attribute(\s[^"']*)?["']`)
	reKeybind         = regexp.MustCompile(`\{g:citadel_binding:'([^']*)'\}`)
	reBreak           = regexp.MustCompile(`(?i)<br\s*/?>`)
	reBlankRun        = regexp.MustCompile(`[ \t]+`)
)

// IsRich reports whether text carries an <img> tag or an inline-attribute span.
func IsRich(text string) bool {
	return reImg.MatchString(text) || reInlineAttribute.MatchString(text)
}

// Keybinds lists the binding names referenced by keybind placeholders, in order of appearance.
func Keybinds(text string) []string {
	matches := reKeybind.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// PlainText renders markup to plain text: line breaks become newlines, images are dropped and
// keybind placeholders become "[Name]".
func PlainText(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	text = reKeybind.ReplaceAllString(text, "[$1]")
	text = reBreak.ReplaceAllString(text, "\n")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + text + "</body>"))
	if err != nil {
		return strings.TrimSpace(text)
	}
	doc.Find("img").Remove()

	lines := strings.Split(doc.Find("body").Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(reBlankRun.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
