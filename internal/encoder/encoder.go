// Package encoder turns a PatientRecord into the ordered feature vector the
// trained model expects.
//
// Categorical attributes are expanded into indicator columns named
// "<attribute>_<category>", then the expansion is reindexed against the
// training-time column list: unknown columns are dropped and missing ones are
// filled with zero.
package encoder

import (
	"errors"
	"strconv"

	"github.com/Skufu/heartrisk/internal/schema"
)

// ErrEmptySchema is returned when the feature column list has no entries.
var ErrEmptySchema = errors.New("feature column schema is empty")

// Vector is an encoded record aligned to a column schema.
type Vector []float64

// ColumnName builds the indicator column name for an attribute category.
func ColumnName(attribute, category string) string {
	return attribute + "_" + category
}

// Expand produces every column the record contributes before alignment.
// Ordinal attributes contribute both their raw value and an indicator column so
// either training convention lines up.
func Expand(rec schema.PatientRecord) map[string]float64 {
	cols := make(map[string]float64, 24)
	for _, f := range schema.Fields() {
		switch f.Kind {
		case schema.KindCategorical:
			if v, ok := rec.Category(f.Name); ok && v != "" {
				cols[ColumnName(f.Name, v)] = 1
			}
		case schema.KindOrdinal:
			v, _ := rec.Numeric(f.Name)
			cols[f.Name] = v
			cols[ColumnName(f.Name, strconv.Itoa(int(v)))] = 1
		default:
			v, _ := rec.Numeric(f.Name)
			cols[f.Name] = v
		}
	}
	return cols
}

// Reindex aligns expanded columns to the given order, filling gaps with zero.
func Reindex(expanded map[string]float64, columns []string) Vector {
	out := make(Vector, len(columns))
	for i, name := range columns {
		out[i] = expanded[name]
	}
	return out
}

// Encode expands rec and aligns it to columns.
func Encode(rec schema.PatientRecord, columns []string) (Vector, error) {
	if len(columns) == 0 {
		return nil, ErrEmptySchema
	}
	return Reindex(Expand(rec), columns), nil
}
