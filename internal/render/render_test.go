package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		notWant []string
	}{
		{
			name: "code fence",
			in:   "Here:\n\n```python\nprint('hi')\n```\n",
			want: []string{`<code class="language-python">`, "print("},
		},
		{
			name: "table extension",
			in:   "| a | b |\n|---|---|\n| 1 | 2 |\n",
			want: []string{"<table>", "<td>1</td>"},
		},
		{
			name:    "raw html is not passed through",
			in:      "<script>alert(1)</script>\n\ntext",
			want:    []string{"<p>text</p>"},
			notWant: []string{"<script>"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Markdown(tt.in)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, string(got), w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, string(got), w)
			}
		})
	}
}
