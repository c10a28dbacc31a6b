// Package markupscan locates named elements in XML-ish content and extracts
// attributes from within a located element's opening tag only. It is a
// deliberately tolerant, tag-scoped text scanner, not a markup parser and
// not a conformance validator for any wire format: unknown content is
// skipped, missing elements yield no result instead of errors, and nested
// or sibling elements are never crossed when reading attributes.
package markupscan

import (
	"regexp"
	"strings"
)

// Element is one located occurrence of a named element.
type Element struct {
	// Name is the local element name the scan matched, without namespace
	// prefix.
	Name string
	// OpenTag is the full opening tag, "<" through ">".
	OpenTag string
	// Inner is the raw content between the opening tag and the matching
	// close tag; empty for self-closing elements.
	Inner string
}

var attrPattern = regexp.MustCompile(`([A-Za-z0-9_:-]+)\s*=\s*("([^"]*)"|'([^']*)')`)

// FindElement returns the first occurrence of the named element, matching
// the local name with or without a namespace prefix, case-insensitively.
func FindElement(content, name string) (*Element, bool) {
	elements := scan(content, name, 1)
	if len(elements) == 0 {
		return nil, false
	}
	return elements[0], true
}

// FindElements returns all occurrences of the named element in document
// order.
func FindElements(content, name string) []*Element {
	return scan(content, name, -1)
}

// Attr extracts a named attribute from the element's opening tag. It never
// reads attributes of nested or sibling elements.
func (e *Element) Attr(name string) (string, bool) {
	for _, match := range attrPattern.FindAllStringSubmatch(e.OpenTag, -1) {
		attrName := match[1]
		if colon := strings.LastIndex(attrName, ":"); colon >= 0 {
			attrName = attrName[colon+1:]
		}
		if strings.EqualFold(attrName, name) {
			if match[3] != "" || strings.HasPrefix(match[2], `"`) {
				return match[3], true
			}
			return match[4], true
		}
	}
	return "", false
}

// AttrOr returns the attribute value or a default when absent.
func (e *Element) AttrOr(name, defaultValue string) string {
	if value, ok := e.Attr(name); ok {
		return value
	}
	return defaultValue
}

// InnerText returns the element's inner content with surrounding whitespace
// trimmed. Nested tags are left in place; callers scan further when needed.
func (e *Element) InnerText() string {
	return strings.TrimSpace(e.Inner)
}

func scan(content, name string, limit int) []*Element {
	var elements []*Element
	lower := strings.ToLower(content)
	lowerName := strings.ToLower(name)
	offset := 0

	for limit < 0 || len(elements) < limit {
		start := findTagStart(lower[offset:], lowerName)
		if start < 0 {
			break
		}
		start += offset

		end := strings.IndexByte(content[start:], '>')
		if end < 0 {
			break
		}
		end += start + 1

		element := &Element{
			Name:    name,
			OpenTag: content[start:end],
		}

		if !strings.HasSuffix(strings.TrimSpace(element.OpenTag), "/>") {
			closeIdx := findCloseTag(lower[end:], lowerName)
			if closeIdx >= 0 {
				element.Inner = content[end : end+closeIdx]
			}
		}

		elements = append(elements, element)
		offset = end
	}
	return elements
}

// findTagStart finds "<name" or "<prefix:name" followed by a delimiter.
func findTagStart(lower, name string) int {
	offset := 0
	for {
		idx := strings.Index(lower[offset:], "<")
		if idx < 0 {
			return -1
		}
		idx += offset
		rest := lower[idx+1:]
		if candidate, ok := matchTagName(rest, name); ok {
			_ = candidate
			return idx
		}
		offset = idx + 1
	}
}

func matchTagName(rest, name string) (string, bool) {
	// Skip a namespace prefix when present.
	local := rest
	if colon := strings.IndexByte(firstToken(rest), ':'); colon >= 0 {
		local = rest[colon+1:]
	}
	if !strings.HasPrefix(local, name) {
		return "", false
	}
	after := local[len(name):]
	if after == "" {
		return name, true
	}
	switch after[0] {
	case ' ', '\t', '\n', '\r', '>', '/':
		return name, true
	}
	return "", false
}

func firstToken(s string) string {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '>', '/':
			return s[:i]
		}
	}
	return s
}

func findCloseTag(lower, name string) int {
	offset := 0
	for {
		idx := strings.Index(lower[offset:], "</")
		if idx < 0 {
			return -1
		}
		idx += offset
		if _, ok := matchTagName(lower[idx+2:], name); ok {
			return idx
		}
		offset = idx + 2
	}
}
