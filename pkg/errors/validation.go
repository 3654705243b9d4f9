package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxFilenameLength keeps generated names well below common filesystem limits.
const maxFilenameLength = 200

// SafeFilename turns a generated download name into a single path element.
//
// The display name is free text and ends up inside the file name, so it may
// contain separators or control characters. Those are replaced with
// underscores; everything else is kept as typed. An empty result falls back
// to fallback.
//
// SafeFilename is only used when writing to the local filesystem. The web
// download keeps the original name and relies on header encoding instead.
func SafeFilename(name, fallback string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == 0:
			b.WriteRune('_')
		case unicode.IsControl(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	out := strings.TrimSpace(b.String())
	// A leading dot would hide the file; ".." would escape the directory.
	out = strings.TrimLeft(out, ".")
	if out == "" {
		return fallback
	}
	if len(out) > maxFilenameLength {
		out = truncateRunes(out, maxFilenameLength)
	}
	return out
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// ValidateColorSpec performs a cheap syntactic check on a colour spec before
// it reaches the parser. Hex specs must be #RGB, #RGBA, #RRGGBB or #RRGGBBAA;
// anything else is treated as a colour name and must be a single word.
func ValidateColorSpec(spec string) error {
	s := strings.TrimSpace(spec)
	if s == "" {
		return New(ErrCodeInvalidColor, "colour cannot be empty")
	}
	if strings.HasPrefix(s, "#") {
		switch len(s) {
		case 4, 5, 7, 9:
		default:
			return New(ErrCodeInvalidColor, "hex colour must be #RGB, #RGBA, #RRGGBB or #RRGGBBAA: %q", spec)
		}
		for _, r := range s[1:] {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return New(ErrCodeInvalidColor, "invalid hex digit in colour %q", spec)
			}
		}
		return nil
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return New(ErrCodeInvalidColor, "unknown colour %q", spec)
		}
	}
	return nil
}
