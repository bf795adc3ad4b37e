package usecase

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var valueUnescaper = strings.NewReplacer(`\!`, "!", `\:`, ":")

// UnescapeLines removes the `\!` and `\:` escapes that Crowdin adds to the
// values of key=value lines. Only the part after the first '=' is touched;
// lines without '=' are kept as-is. Every line in the output ends with '\n'.
func UnescapeLines(text string) string {
	var out strings.Builder
	out.Grow(len(text) + 1)

	for len(text) > 0 {
		line, rest := cutLine(text)
		text = rest

		if key, value, found := strings.Cut(line, "="); found {
			out.WriteString(key)
			out.WriteByte('=')
			out.WriteString(valueUnescaper.Replace(value))
		} else {
			out.WriteString(line)
		}
		out.WriteByte('\n')
	}

	return out.String()
}

// cutLine splits off the first line. "\n", "\r\n" and a lone "\r" all end a
// line.
func cutLine(text string) (line, rest string) {
	i := strings.IndexAny(text, "\r\n")
	if i < 0 {
		return text, ""
	}
	line, rest = text[:i], text[i+1:]
	if text[i] == '\r' && strings.HasPrefix(rest, "\n") {
		rest = rest[1:]
	}
	return line, rest
}

// DecodeUTF8 reads entry content as UTF-8. Invalid byte sequences become
// U+FFFD, so the output of UnescapeLines is always valid UTF-8.
func DecodeUTF8(data []byte) (string, error) {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
