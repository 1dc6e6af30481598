package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Skufu/heartrisk/internal/apperr"
)

const (
	ModelFile          = "model.json"
	ScalerFile         = "scaler.json"
	FeatureColumnsFile = "feature_columns.json"
)

// selfChecker is implemented by artifacts that can verify their own structure.
type selfChecker interface {
	validate() error
}

// Artifacts is the read-only bundle loaded once at startup and shared by all requests.
type Artifacts struct {
	classifier Classifier
	scaler     Scaler
	columns    []string
}

// NewArtifacts validates that the three artifacts fit together.
func NewArtifacts(clf Classifier, scaler Scaler, columns []string) (*Artifacts, error) {
	if clf == nil || scaler == nil {
		return nil, apperr.NewConfigurationError("classifier and scaler are required", nil)
	}
	if v, ok := scaler.(selfChecker); ok {
		if err := v.validate(); err != nil {
			return nil, apperr.NewConfigurationError("invalid scaler", err)
		}
	}
	if v, ok := clf.(selfChecker); ok {
		if err := v.validate(); err != nil {
			return nil, apperr.NewConfigurationError("invalid classifier", err)
		}
	}
	if len(columns) == 0 {
		return nil, apperr.NewConfigurationError("feature column schema is empty", nil)
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if c == "" {
			return nil, apperr.NewConfigurationError("feature column schema contains an empty name", nil)
		}
		if _, dup := seen[c]; dup {
			return nil, apperr.NewConfigurationError(fmt.Sprintf("duplicate feature column %q", c), nil)
		}
		seen[c] = struct{}{}
	}
	if n := scaler.NumFeatures(); n != len(columns) {
		return nil, apperr.NewConfigurationError("scaler does not match feature columns",
			fmt.Errorf("%w: scaler has %d features, schema has %d", ErrShapeMismatch, n, len(columns)))
	}
	if n := clf.NumFeatures(); n != len(columns) {
		return nil, apperr.NewConfigurationError("classifier does not match feature columns",
			fmt.Errorf("%w: classifier has %d features, schema has %d", ErrShapeMismatch, n, len(columns)))
	}

	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Artifacts{classifier: clf, scaler: scaler, columns: cols}, nil
}

// Load reads model.json, scaler.json and feature_columns.json from dir.
func Load(dir string) (*Artifacts, error) {
	var clf LogisticRegression
	if err := readJSON(filepath.Join(dir, ModelFile), &clf); err != nil {
		return nil, err
	}

	var scaler StandardScaler
	if err := readJSON(filepath.Join(dir, ScalerFile), &scaler); err != nil {
		return nil, err
	}

	var columns []string
	if err := readJSON(filepath.Join(dir, FeatureColumnsFile), &columns); err != nil {
		return nil, err
	}

	return NewArtifacts(&clf, &scaler, columns)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.NewConfigurationError("artifact missing: "+path, err)
		}
		return apperr.NewConfigurationError("read artifact "+path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperr.NewConfigurationError("decode artifact "+path, err)
	}
	return nil
}

// Columns returns a copy of the feature column schema.
func (a *Artifacts) Columns() []string {
	out := make([]string, len(a.columns))
	copy(out, a.columns)
	return out
}

// Scale runs the fitted scaler. A shape mismatch is a configuration error.
func (a *Artifacts) Scale(x []float64) ([]float64, error) {
	out, err := a.scaler.Transform(x)
	if err != nil {
		if errors.Is(err, ErrShapeMismatch) {
			return nil, apperr.NewConfigurationError("encoder output does not fit scaler", err)
		}
		return nil, apperr.NewInferenceError("scale features", err)
	}
	return out, nil
}

// Infer runs the classifier on a scaled vector.
func (a *Artifacts) Infer(x []float64) (PredictionResult, error) {
	res, err := Infer(a.classifier, x)
	if err != nil {
		if errors.Is(err, ErrShapeMismatch) {
			return PredictionResult{}, apperr.NewConfigurationError("scaled vector does not fit classifier", err)
		}
		return PredictionResult{}, apperr.NewInferenceError("classify", err)
	}
	return res, nil
}
