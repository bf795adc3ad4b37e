package usecase_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/l10nsync/pkg/usecase"
)

func TestUnescapeLines(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "empty text yields empty output",
			input:  "",
			expect: "",
		},
		{
			name:   "unescape bang and colon in value",
			input:  `k=v\!w\:x`,
			expect: "k=v!w:x\n",
		},
		{
			name:   "key part is left untouched",
			input:  `a\!b\:c=d\!`,
			expect: "a\\!b\\:c=d!\n",
		},
		{
			name:   "only first '=' splits the line",
			input:  `url=http\://example.com/?a=b\!`,
			expect: "url=http://example.com/?a=b!\n",
		},
		{
			name:   "line without '=' passes through",
			input:  `# comment \! kept`,
			expect: "# comment \\! kept\n",
		},
		{
			name:   "empty key and empty value",
			input:  "=\nk=",
			expect: "=\nk=\n",
		},
		{
			name:   "other escapes are kept",
			input:  `k=\n\t\=\\`,
			expect: "k=\\n\\t\\=\\\\\n",
		},
		{
			name:   "CRLF line endings are normalized",
			input:  "a=b\\!\r\nc=d\\:\r\n",
			expect: "a=b!\nc=d:\n",
		},
		{
			name:   "lone CR ends a line",
			input:  "a=1\rb=2",
			expect: "a=1\nb=2\n",
		},
		{
			name:   "blank lines are preserved",
			input:  "a=1\n\nb=2\n",
			expect: "a=1\n\nb=2\n",
		},
		{
			name:   "final line without newline gets one",
			input:  "a=1\nb=2",
			expect: "a=1\nb=2\n",
		},
		{
			name:   "multibyte text",
			input:  `greeting=こんにちは\!`,
			expect: "greeting=こんにちは!\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.V(t, usecase.UnescapeLines(tc.input)).Equal(tc.expect)
		})
	}
}

func TestUnescapeLinesValueProperty(t *testing.T) {
	keys := []string{"k", "", "a.b.c", `x\!y`}
	values := []string{"", "v", `\!`, `\:`, `\\!`, `a\!b\:c\!\:`, `no escapes here`, `=\!=`}

	for _, k := range keys {
		for _, v := range values {
			replaced := strings.ReplaceAll(strings.ReplaceAll(v, `\!`, "!"), `\:`, ":")
			gt.V(t, usecase.UnescapeLines(k+"="+v)).Equal(k + "=" + replaced + "\n")
		}
	}
}

func TestDecodeUTF8(t *testing.T) {
	t.Run("valid text is kept", func(t *testing.T) {
		text := gt.R1(usecase.DecodeUTF8([]byte("title=こんにちは\\!"))).NoError(t)
		gt.V(t, text).Equal("title=こんにちは\\!")
	})

	t.Run("invalid bytes become replacement characters", func(t *testing.T) {
		text := gt.R1(usecase.DecodeUTF8([]byte("k=\xff\\!"))).NoError(t)
		out := usecase.UnescapeLines(text)
		gt.V(t, out).Equal("k=\uFFFD!\n")
		gt.True(t, utf8.ValidString(out))
	})
}
