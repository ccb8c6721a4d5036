package csvfile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

func TestLoad(t *testing.T) {
	l := New()
	assert.Equal(t, []string{".csv"}, l.Extensions())

	data := []byte("id,text,ignored\nn1,\"first, with comma\",x\nn2,second,y\n")
	docs, err := l.Load(context.Background(), "notes.csv", data)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "n1", docs[0].ID)
	assert.Equal(t, "first, with comma", docs[0].Text)
	assert.Equal(t, "n2", docs[1].ID)
}

func TestLoadColumnOrderIrrelevant(t *testing.T) {
	data := []byte("text,id\nhello,n9\n")
	docs, err := New().Load(context.Background(), "notes.csv", data)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "n9", docs[0].ID)
	assert.Equal(t, "hello", docs[0].Text)
}

func TestLoadMissingColumns(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no id", "text\nhello\n"},
		{"no text", "id\nn1\n"},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Load(context.Background(), "bad.csv", []byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrBadFormat)
		})
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	docs, err := New().Load(context.Background(), "empty.csv", []byte("id,text\n"))
	require.NoError(t, err)
	assert.Empty(t, docs)
}
