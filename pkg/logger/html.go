package logger

import (
	"html"
	"regexp"
	"strings"
)

var ansiColor = regexp.MustCompile(`\033\[(\d+)m`)

// Color mapping for ANSI codes
var colorMap = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"36": "cyan",
}

// Converts ANSI color codes to HTML span with inline styles
func ansiToHTML(input string) string {
	var result strings.Builder
	var lastIndex int
	open := false

	result.WriteString("<pre>")

	for _, match := range ansiColor.FindAllStringSubmatchIndex(input, -1) {
		start, end := match[0], match[1]
		if start > lastIndex {
			result.WriteString(html.EscapeString(input[lastIndex:start]))
		}

		code := input[match[2]:match[3]]
		if color, ok := colorMap[code]; ok {
			if open {
				result.WriteString("</span>")
			}
			result.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		} else if code == "0" && open {
			result.WriteString("</span>")
			open = false
		}

		lastIndex = end
	}

	if lastIndex < len(input) {
		result.WriteString(html.EscapeString(input[lastIndex:]))
	}
	if open {
		result.WriteString("</span>")
	}

	result.WriteString("</pre>")
	return result.String()
}
