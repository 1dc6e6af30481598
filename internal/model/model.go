// Package model adapts the externally trained artifacts: a fitted scaler, a
// binary classifier and the ordered feature column list.
package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrShapeMismatch reports a vector whose width differs from the fitted artifact.
var ErrShapeMismatch = errors.New("feature vector shape mismatch")

// Scaler normalizes an encoded vector.
type Scaler interface {
	Transform(x []float64) ([]float64, error)
	NumFeatures() int
}

// Classifier scores a scaled vector.
type Classifier interface {
	Predict(x []float64) (int, error)
	// PredictProba returns the class distribution [p(class 0), p(class 1)].
	PredictProba(x []float64) ([]float64, error)
	NumFeatures() int
}

// PredictionResult is the classifier outcome. Probability is in [0,100].
type PredictionResult struct {
	Label       int     `json:"label"`
	Probability float64 `json:"probability"`
}

// Infer runs the classifier once and converts the positive class probability to a percentage.
func Infer(clf Classifier, x []float64) (PredictionResult, error) {
	label, err := clf.Predict(x)
	if err != nil {
		return PredictionResult{}, fmt.Errorf("predict: %w", err)
	}
	proba, err := clf.PredictProba(x)
	if err != nil {
		return PredictionResult{}, fmt.Errorf("predict proba: %w", err)
	}
	if len(proba) < 2 {
		return PredictionResult{}, fmt.Errorf("predict proba: expected 2 classes, got %d", len(proba))
	}
	return PredictionResult{Label: label, Probability: proba[1] * 100}, nil
}

// StandardScaler applies (x - mean) / scale per column.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// NumFeatures is the width the scaler was fitted on.
func (s *StandardScaler) NumFeatures() int {
	return len(s.Mean)
}

// Transform standardizes x column by column.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(s.Scale) != len(s.Mean) {
		return nil, fmt.Errorf("%w: scaler mean has %d entries but scale has %d", ErrShapeMismatch, len(s.Mean), len(s.Scale))
	}
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("%w: scaler expects %d features, got %d", ErrShapeMismatch, len(s.Mean), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 {
		return errors.New("scaler has no features")
	}
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("scaler mean has %d entries but scale has %d", len(s.Mean), len(s.Scale))
	}
	return nil
}

// LogisticRegression is a fitted binary logistic model.
type LogisticRegression struct {
	Type      string    `json:"type"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	Threshold float64   `json:"threshold"`
}

// NumFeatures is the number of coefficients.
func (m *LogisticRegression) NumFeatures() int {
	return len(m.Coef)
}

func (m *LogisticRegression) positive(x []float64) (float64, error) {
	if len(x) != len(m.Coef) {
		return 0, fmt.Errorf("%w: model expects %d features, got %d", ErrShapeMismatch, len(m.Coef), len(x))
	}
	z := m.Intercept
	for i, v := range x {
		z += m.Coef[i] * v
	}
	return 1 / (1 + math.Exp(-z)), nil
}

// PredictProba returns [1-p, p] where p is the sigmoid of the linear score.
func (m *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	p, err := m.positive(x)
	if err != nil {
		return nil, err
	}
	return []float64{1 - p, p}, nil
}

// Predict returns 1 when the positive probability reaches the threshold.
func (m *LogisticRegression) Predict(x []float64) (int, error) {
	p, err := m.positive(x)
	if err != nil {
		return 0, err
	}
	threshold := m.Threshold
	if threshold == 0 {
		threshold = 0.5
	}
	if p >= threshold {
		return 1, nil
	}
	return 0, nil
}

func (m *LogisticRegression) validate() error {
	if m.Type != "" && m.Type != "logistic_regression" {
		return fmt.Errorf("unsupported model type %q", m.Type)
	}
	if len(m.Coef) == 0 {
		return errors.New("model has no coefficients")
	}
	if m.Threshold < 0 || m.Threshold >= 1 {
		return fmt.Errorf("threshold %v outside [0,1)", m.Threshold)
	}
	return nil
}
