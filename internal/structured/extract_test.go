package structured

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-web-platform/internal/common/validation"
)

var ideationFields = []string{"projectName", "description", "features", "components"}

func TestBestEffortExtractor_Extract(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "fenced with prose around",
			raw:  "Here is the JSON:\n```json\n{\"projectName\":\"T\",\"description\":\"D\",\"features\":[\"a\"],\"components\":[]}\n```\nHope that helps!",
			want: `{"projectName":"T","description":"D","features":["a"],"components":[]}`,
		},
		{
			name: "plain object",
			raw:  `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "surrounding whitespace",
			raw:  "\n\n   {\"a\":1}  \n",
			want: `{"a":1}`,
		},
		{
			name: "fence without language tag",
			raw:  "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "other language tag",
			raw:  "```javascript\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "leading commentary only",
			raw:  "Sure! {\"a\":{\"b\":2}}",
			want: `{"a":{"b":2}}`,
		},
		{
			name: "no braces",
			raw:  "Sure, no problem.",
			want: "Sure, no problem.",
		},
		{
			name: "closing brace before opening brace",
			raw:  "} oops {",
			want: "} oops {",
		},
		{
			name: "fence inside a string value",
			raw:  "```json\n" + `{"content":"` + "```js" + `\nx\n` + "```" + `"}` + "\n```",
			want: `{"content":"` + "```js" + `\nx\n` + "```" + `"}`,
		},
		{
			name: "closing fence on the object line",
			raw:  "```json\n{\"a\":1}```",
			want: `{"a":1}`,
		},
		{
			name: "indented fence lines",
			raw:  "  ```json\r\n{\"a\":1}\r\n  ```",
			want: `{"a":1}`,
		},
		{
			name: "fenced text without braces",
			raw:  "```\nnothing here\n```",
			want: "nothing here",
		},
	}

	ext := BestEffortExtractor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ext.Extract(tt.raw))
		})
	}
}

// Trailing prose containing braces makes the slice overrun the object; the parse step then fails.
func TestBestEffortExtractor_TrailingBracesLimitation(t *testing.T) {
	raw := `{"projectName":"T"} Let me know if you want {more} details.`
	candidate := BestEffortExtractor{}.Extract(raw)

	assert.Equal(t, `{"projectName":"T"} Let me know if you want {more}`, candidate)

	_, err := validation.ValidateRequired(candidate, []string{"projectName"})
	var parseErr *validation.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestExtractThenValidate_FencedRoundTrip(t *testing.T) {
	objects := []map[string]interface{}{
		{"projectName": "T", "description": "D", "features": []interface{}{"a"}, "components": []interface{}{}},
		{
			"projectName": "Shop",
			"description": "A {tiny} store",
			"features":    []interface{}{"cart", "checkout"},
			"components": []interface{}{
				map[string]interface{}{"name": "Cart", "purpose": "holds items", "props": []interface{}{"items"}},
			},
			"techStack": map[string]interface{}{"frontend": []interface{}{"React"}, "backend": []interface{}{}},
		},
		{"projectName": "Unicode ✓", "description": "naïve café", "features": []interface{}{}, "components": []interface{}{}, "count": float64(3)},
	}

	ext := BestEffortExtractor{}
	for _, obj := range objects {
		data, err := json.MarshalIndent(obj, "", "  ")
		require.NoError(t, err)

		for _, wrapped := range []string{
			"```json\n" + string(data) + "\n```",
			"```\n" + string(data) + "\n```",
			"Here you go:\n```json\n" + string(data) + "\n```\nThanks!",
			string(data),
		} {
			doc, err := validation.ValidateRequired(ext.Extract(wrapped), ideationFields)
			require.NoError(t, err)
			assert.Equal(t, obj, doc)
		}
	}
}

func TestExtractThenValidate_MarkdownInsideStringValue(t *testing.T) {
	obj := map[string]interface{}{
		"documentation": "# Shop\n\n## Installation\n```bash\nnpm install\n```\n",
		"files": []interface{}{
			map[string]interface{}{"path": "README.md", "content": "```js\nconsole.log(1)\n```"},
		},
	}
	data, err := json.Marshal(obj)
	require.NoError(t, err)

	ext := BestEffortExtractor{}
	for _, wrapped := range []string{
		string(data),
		"```json\n" + string(data) + "\n```",
		"Here you go:\n```\n" + string(data) + "\n```\nThanks!",
	} {
		doc, err := validation.ValidateRequired(ext.Extract(wrapped), []string{"documentation", "files"})
		require.NoError(t, err, "input %q", wrapped)
		assert.Equal(t, obj, doc)
	}
}

func TestExtractThenValidate_NoBracesIsParseError(t *testing.T) {
	inputs := []string{
		"Sure, no problem.",
		"",
		"   ",
		"```json\n```",
		"I cannot help with that request.",
		"[1, 2, 3]",
	}

	ext := BestEffortExtractor{}
	for _, raw := range inputs {
		_, err := validation.ValidateRequired(ext.Extract(raw), ideationFields)
		require.Error(t, err, "input %q", raw)

		var parseErr *validation.ParseError
		assert.True(t, errors.As(err, &parseErr), "input %q: got %T", raw, err)
	}
}

func TestExtractorFunc(t *testing.T) {
	var ext Extractor = ExtractorFunc(func(raw string) string { return "{}" })
	assert.Equal(t, "{}", ext.Extract("anything"))
}
