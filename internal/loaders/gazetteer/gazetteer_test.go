package gazetteer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

func TestParse(t *testing.T) {
	data := []byte("label,term,notes\nMedication,aspirin,common\nSymptom,fever,\n")

	rules, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []domain.Rule{
		{Label: "Medication", Term: "aspirin"},
		{Label: "Symptom", Term: "fever"},
	}, rules)
}

func TestParseColumnOrderIrrelevant(t *testing.T) {
	rules, err := Parse([]byte("term,label\nfever,Symptom\n"))
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, domain.Rule{Label: "Symptom", Term: "fever"}, rules[0])
}

func TestParseMissingColumns(t *testing.T) {
	_, err := Parse([]byte("label,word\nSymptom,fever\n"))
	assert.ErrorIs(t, err, domain.ErrBadFormat)

	_, err = Parse([]byte(""))
	assert.ErrorIs(t, err, domain.ErrBadFormat)
}

func TestParseHeaderOnly(t *testing.T) {
	rules, err := Parse([]byte("label,term\n"))
	require.NoError(t, err)
	assert.Empty(t, rules)
}
