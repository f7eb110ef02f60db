package models

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// stump is one boosting round: a single-feature decision split.
type stump struct {
	FeatureIndex int     `json:"feature_index"`
	Threshold    float64 `json:"threshold"`
	LeftValue    float64 `json:"left_value"`
	RightValue   float64 `json:"right_value"`
}

// gbmFile is the on-disk representation of one trained gradient-boosting
// model: an additive sum of stumps fed through a sigmoid link, plus the
// feature-name list the model was trained against.
type gbmFile struct {
	Name         string   `json:"name"`
	FeatureNames []string `json:"feature_names"`
	Bias         float64  `json:"bias"`
	Stumps       []stump  `json:"stumps"`
}

// GBM is one loaded gradient-boosting probability model.
type GBM struct {
	name         string
	featureNames []string
	bias         float64
	stumps       []stump
}

// LoadGBM reads and parses one model artifact from path.
func LoadGBM(path string) (*GBM, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	var f gbmFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	if f.Name == "" || len(f.FeatureNames) == 0 {
		return nil, fmt.Errorf("model %s missing name or feature_names", path)
	}
	return &GBM{
		name:         f.Name,
		featureNames: f.FeatureNames,
		bias:         f.Bias,
		stumps:       f.Stumps,
	}, nil
}

func (g *GBM) Name() string {
	return g.name
}

func (g *GBM) FeatureNames() []string {
	return g.featureNames
}

// PredictProba returns the model's YES-probability for the given feature
// values, which must align positionally with FeatureNames.
func (g *GBM) PredictProba(values []float64) float64 {
	score := g.bias
	for _, s := range g.stumps {
		if s.FeatureIndex < 0 || s.FeatureIndex >= len(values) {
			continue
		}
		if values[s.FeatureIndex] <= s.Threshold {
			score += s.LeftValue
		} else {
			score += s.RightValue
		}
	}
	return sigmoid(score)
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
