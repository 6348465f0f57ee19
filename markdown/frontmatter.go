package markdown

import (
	"strings"
)

// parseFrontMatter splits an optional YAML-style front matter block off the
// start of a document. It returns the parsed key/value fields and the body
// that follows the block. Documents without a well-formed block come back
// unchanged with nil fields.
func parseFrontMatter(data []byte) (map[string]string, string) {
	body := strings.TrimPrefix(string(data), "\uFEFF")

	lines := strings.Split(body, "\n")
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	if start >= len(lines) || strings.TrimRight(lines[start], "\r") != "---" {
		return nil, body
	}

	end := -1
	for i := start + 1; i < len(lines); i++ {
		switch strings.TrimRight(lines[i], "\r") {
		case "---", "...":
			end = i
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return nil, body
	}

	fields := make(map[string]string)
	for _, line := range lines[start+1 : end] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		fields[key] = unquote(strings.TrimSpace(strings.TrimRight(value, "\r")))
	}
	return fields, strings.Join(lines[end+1:], "\n")
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// firstField returns the first non-empty value among the named keys.
func firstField(fields map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := fields[key]; v != "" {
			return v
		}
	}
	return ""
}
