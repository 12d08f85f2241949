package filter

import "strings"

// quoteMarker introduces every quoted argument of a command.
const quoteMarker = ` "`

// quoted extracts a leading quoted argument from s.
//
// s must start with a space directly followed by a quote. Returns the text between that quote
// and the next one, and whatever follows the closing quote.
func quoted(s string) (arg string, rest string, ok bool) {
	if !strings.HasPrefix(s, quoteMarker) {
		return "", "", false
	}

	s = s[len(quoteMarker):]
	end := strings.IndexByte(s, '"')
	if end < 0 {
		return "", "", false
	}

	return s[:end], s[end+1:], true
}

// lastQuoted is like quoted, but the closing quote must also be the very last character of s.
func lastQuoted(s string) (string, bool) {
	arg, rest, ok := quoted(s)
	if !ok || rest != "" {
		return "", false
	}

	return arg, true
}
