package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextNodes_PlainOnly(t *testing.T) {
	segments := []Segment{
		{Kind: SegmentPlain, Content: "hello "},
		{Kind: SegmentPlain, Content: "world"},
	}

	nodes := TextNodes(segments)

	require.Len(t, nodes, 2)
	assert.Equal(t, "hello ", nodes[0].Content)
	assert.False(t, nodes[0].Decoration)
	assert.Equal(t, "world", nodes[1].Content)
}

func TestTextNodes_BadgeBecomesDecorativeNode(t *testing.T) {
	segments := []Segment{
		{Kind: SegmentPlain, Content: "has "},
		{Kind: SegmentHighlight, Content: "fever", Label: "Symptom", Badge: "1/3"},
		{Kind: SegmentPlain, Content: " today"},
	}

	nodes := TextNodes(segments)

	require.Len(t, nodes, 4)
	assert.Equal(t, "fever", nodes[1].Content)
	assert.False(t, nodes[1].Decoration)
	assert.Equal(t, "1/3", nodes[2].Content)
	assert.True(t, nodes[2].Decoration)
	assert.Equal(t, " today", nodes[3].Content)
}

func TestTextNodes_UnbadgedHighlight(t *testing.T) {
	segments := []Segment{
		{Kind: SegmentHighlight, Content: "aspirin", Label: "Medication"},
	}

	nodes := TextNodes(segments)

	require.Len(t, nodes, 1)
	assert.False(t, nodes[0].Decoration)
}
