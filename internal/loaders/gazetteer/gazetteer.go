// Package gazetteer parses label,term rule files for the rule
// annotator.
package gazetteer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// Parse reads a gazetteer CSV: a header with label and term columns,
// one rule per row. Missing columns fail with domain.ErrBadFormat.
func Parse(data []byte) ([]domain.Rule, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading gazetteer header: %v", domain.ErrBadFormat, err)
	}

	labelCol, termCol := -1, -1
	for i, col := range header {
		switch col {
		case "label":
			labelCol = i
		case "term":
			termCol = i
		}
	}
	if labelCol < 0 || termCol < 0 {
		return nil, fmt.Errorf("%w: gazetteer needs columns label,term", domain.ErrBadFormat)
	}

	var rules []domain.Rule
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrBadFormat, err)
		}
		if labelCol >= len(row) || termCol >= len(row) {
			return nil, fmt.Errorf("%w: short gazetteer row", domain.ErrBadFormat)
		}
		rules = append(rules, domain.Rule{Label: row[labelCol], Term: row[termCol]})
	}
	return rules, nil
}
