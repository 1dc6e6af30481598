package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/heartrisk/internal/apperr"
)

type fixedClassifier struct {
	width int
	p1    float64
	err   error
}

func (f fixedClassifier) NumFeatures() int { return f.width }

func (f fixedClassifier) Predict(x []float64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.p1 >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

func (f fixedClassifier) PredictProba(x []float64) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float64{1 - f.p1, f.p1}, nil
}

func TestStandardScalerTransform(t *testing.T) {
	s := &StandardScaler{Mean: []float64{10, 0, 5}, Scale: []float64{2, 0, 5}}
	out, err := s.Transform([]float64{14, 3, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 3, -1}, out, 1e-9)
}

func TestStandardScalerShapeMismatch(t *testing.T) {
	s := &StandardScaler{Mean: []float64{1, 2}, Scale: []float64{1, 1}}
	_, err := s.Transform([]float64{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestLogisticRegression(t *testing.T) {
	m := &LogisticRegression{Coef: []float64{1, -1}, Intercept: 0}

	proba, err := m.PredictProba([]float64{2, 2})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, proba, 1e-9)

	label, err := m.Predict([]float64{3, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	label, err = m.Predict([]float64{0, 3})
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	_, err = m.Predict([]float64{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestInferScalesToPercent(t *testing.T) {
	res, err := Infer(fixedClassifier{width: 1, p1: 0.65}, []float64{0})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Label)
	assert.InDelta(t, 65.0, res.Probability, 1e-9)
}

func TestInferPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Infer(fixedClassifier{width: 1, err: boom}, []float64{0})
	assert.ErrorIs(t, err, boom)
}

func TestNewArtifactsRejectsIncompatibleShapes(t *testing.T) {
	scaler := &StandardScaler{Mean: []float64{0, 0}, Scale: []float64{1, 1}}

	tests := []struct {
		name    string
		clf     Classifier
		columns []string
	}{
		{"empty schema", fixedClassifier{width: 0}, nil},
		{"duplicate column", fixedClassifier{width: 2}, []string{"age", "age"}},
		{"scaler width", fixedClassifier{width: 3}, []string{"a", "b", "c"}},
		{"classifier width", fixedClassifier{width: 3}, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArtifacts(tt.clf, scaler, tt.columns)
			require.Error(t, err)
			assert.Equal(t, apperr.ErrorTypeConfiguration, apperr.TypeOf(err))
		})
	}
}

func TestNewArtifactsRejectsMalformedScaler(t *testing.T) {
	scaler := &StandardScaler{Mean: []float64{0, 0}, Scale: []float64{1}}
	_, err := NewArtifacts(fixedClassifier{width: 2}, scaler, []string{"a", "b"})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrorTypeConfiguration, apperr.TypeOf(err))
}

func TestNewArtifactsRejectsMalformedClassifier(t *testing.T) {
	clf := &LogisticRegression{Coef: []float64{1, 1}, Threshold: 1.5}
	_, err := NewArtifacts(clf, &StandardScaler{Mean: []float64{0, 0}, Scale: []float64{1, 1}}, []string{"a", "b"})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrorTypeConfiguration, apperr.TypeOf(err))
}

func TestStandardScalerShortScaleIsShapeMismatch(t *testing.T) {
	s := &StandardScaler{Mean: []float64{0, 0}, Scale: []float64{1}}
	assert.NotPanics(t, func() {
		_, err := s.Transform([]float64{1, 2})
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}

func TestArtifactsColumnsIsCopy(t *testing.T) {
	a, err := NewArtifacts(fixedClassifier{width: 1}, &StandardScaler{Mean: []float64{0}, Scale: []float64{1}}, []string{"age"})
	require.NoError(t, err)
	cols := a.Columns()
	cols[0] = "changed"
	assert.Equal(t, []string{"age"}, a.Columns())
}

func TestArtifactsScaleShapeMismatchIsConfigurationError(t *testing.T) {
	a, err := NewArtifacts(fixedClassifier{width: 1}, &StandardScaler{Mean: []float64{0}, Scale: []float64{1}}, []string{"age"})
	require.NoError(t, err)
	_, err = a.Scale([]float64{1, 2})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrorTypeConfiguration, apperr.TypeOf(err))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ModelFile, `{"type":"logistic_regression","coef":[0.5,-0.25],"intercept":0.1}`)
	writeFile(t, dir, ScalerFile, `{"mean":[50,1],"scale":[10,1]}`)
	writeFile(t, dir, FeatureColumnsFile, `["age","sex"]`)

	a, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "sex"}, a.Columns())

	scaled, err := a.Scale([]float64{60, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0}, scaled, 1e-9)

	res, err := a.Infer(scaled)
	require.NoError(t, err)
	assert.Greater(t, res.Probability, 50.0)
	assert.LessOrEqual(t, res.Probability, 100.0)
}

func TestLoadShippedArtifacts(t *testing.T) {
	a, err := Load(filepath.Join("..", "..", "artifacts"))
	require.NoError(t, err)
	assert.Len(t, a.Columns(), 20)
}

func TestLoadFailures(t *testing.T) {
	t.Run("missing files", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.Equal(t, apperr.ErrorTypeConfiguration, apperr.TypeOf(err))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("corrupt model", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ModelFile, `{not json`)
		_, err := Load(dir)
		assert.Equal(t, apperr.ErrorTypeConfiguration, apperr.TypeOf(err))
	})

	t.Run("unsupported model type", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ModelFile, `{"type":"random_forest","coef":[1]}`)
		writeFile(t, dir, ScalerFile, `{"mean":[0],"scale":[1]}`)
		writeFile(t, dir, FeatureColumnsFile, `["age"]`)
		_, err := Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "random_forest")
	})

	t.Run("width drift", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ModelFile, `{"coef":[1,2,3]}`)
		writeFile(t, dir, ScalerFile, `{"mean":[0,0],"scale":[1,1]}`)
		writeFile(t, dir, FeatureColumnsFile, `["age","sex"]`)
		_, err := Load(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}
