package ai

import "errors"

// ErrNoJSON indicates the completion text contained no balanced JSON value of
// the requested kind.
var ErrNoJSON = errors.New("no JSON value found in completion text")

// ExtractArray returns the first balanced JSON array substring embedded in
// free-form text. Bracket depth is tracked through nested values and string
// literals, so prose containing stray brackets before or after the payload
// does not confuse the scan.
func ExtractArray(text string) (string, error) {
	return extractBalanced(text, '[', ']')
}

// ExtractObject returns the first balanced JSON object substring embedded in
// free-form text.
func ExtractObject(text string) (string, error) {
	return extractBalanced(text, '{', '}')
}

func extractBalanced(text string, open, closing byte) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		ch := text[i]

		if start == -1 {
			if ch == open {
				start = i
				depth = 1
			}
			continue
		}

		if escaped {
			escaped = false
			continue
		}

		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
			// Brackets inside string literals carry no structure.
		case ch == open:
			depth++
		case ch == closing:
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", ErrNoJSON
}
