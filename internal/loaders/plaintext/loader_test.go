package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "single document without delimiter",
			raw:  "one note\nwith two lines",
			want: []string{"one note\nwith two lines"},
		},
		{
			name: "blank line splits",
			raw:  "first\n\nsecond\n\nthird",
			want: []string{"first", "second", "third"},
		},
		{
			name: "extra blank lines collapse",
			raw:  "first\n\n\n\nsecond",
			want: []string{"first", "second"},
		},
		{
			name: "windows line endings",
			raw:  "first\r\n\r\nsecond",
			want: []string{"first", "second"},
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "\n\n  first  \n\nsecond\n\n",
			want: []string{"first", "second"},
		},
		{
			name: "empty input",
			raw:  "",
			want: nil,
		},
		{
			name: "whitespace only",
			raw:  "  \n \n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.raw))
		})
	}
}

func TestLoad(t *testing.T) {
	l := New()
	assert.Equal(t, []string{".txt"}, l.Extensions())

	docs, err := l.Load(context.Background(), "notes.txt", []byte("a\n\nb"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Empty(t, docs[0].ID, "plain text documents get sequence IDs downstream")
	assert.Equal(t, "a", docs[0].Text)
	assert.Equal(t, "b", docs[1].Text)
}
