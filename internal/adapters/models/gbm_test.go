package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModelFile(t *testing.T, f gbmFile) string {
	t.Helper()
	raw, err := json.Marshal(f)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestLoadGBM_RoundTrips(t *testing.T) {
	path := writeModelFile(t, gbmFile{
		Name:         "gbm_test",
		FeatureNames: []string{"price_yes", "spread"},
		Bias:         0,
		Stumps: []stump{
			{FeatureIndex: 0, Threshold: 0.5, LeftValue: -2, RightValue: 2},
		},
	})

	m, err := LoadGBM(path)
	require.NoError(t, err)
	assert.Equal(t, "gbm_test", m.Name())
	assert.Equal(t, []string{"price_yes", "spread"}, m.FeatureNames())
}

func TestLoadGBM_RejectsMissingName(t *testing.T) {
	path := writeModelFile(t, gbmFile{FeatureNames: []string{"price_yes"}})
	_, err := LoadGBM(path)
	assert.Error(t, err)
}

func TestLoadGBM_RejectsMissingFile(t *testing.T) {
	_, err := LoadGBM(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestPredictProba_SplitsOnThreshold(t *testing.T) {
	path := writeModelFile(t, gbmFile{
		Name:         "split",
		FeatureNames: []string{"x"},
		Bias:         0,
		Stumps: []stump{
			{FeatureIndex: 0, Threshold: 0.5, LeftValue: -5, RightValue: 5},
		},
	})
	m, err := LoadGBM(path)
	require.NoError(t, err)

	assert.Less(t, m.PredictProba([]float64{0.1}), 0.5)
	assert.Greater(t, m.PredictProba([]float64{0.9}), 0.5)
}

func TestPredictProba_IgnoresOutOfRangeStump(t *testing.T) {
	path := writeModelFile(t, gbmFile{
		Name:         "oob",
		FeatureNames: []string{"x"},
		Bias:         0,
		Stumps: []stump{
			{FeatureIndex: 5, Threshold: 0.5, LeftValue: -5, RightValue: 5},
		},
	})
	m, err := LoadGBM(path)
	require.NoError(t, err)

	assert.Equal(t, sigmoid(0), m.PredictProba([]float64{0.1}))
}
