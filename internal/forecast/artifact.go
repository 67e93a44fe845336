// internal/forecast/artifact.go
package forecast

import (
	"encoding/json"
	"fmt"
	"os"
)

// Tree is one regressor of the exported forest, in the flat array layout
// the training pipeline emits (index-parallel node arrays; leaves carry
// feature = -2).
type Tree struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

// Predict walks the tree for one feature vector.
func (t *Tree) Predict(features []float64) float64 {
	node := 0
	for t.Feature[node] >= 0 {
		if features[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

// Artifact is the versioned demand model export: the forest plus the
// label-encoder class orders and the base-demand reference table.
type Artifact struct {
	Version        string         `json:"version"`
	ModelType      string         `json:"model_type"`
	Features       []string       `json:"features"`
	WeatherClasses []string       `json:"weather_classes"`
	ItemClasses    []string       `json:"item_classes"`
	Items          []string       `json:"items"`
	BaseDemand     map[string]int `json:"base_demand"`
	Trees          []Tree         `json:"trees"`
}

func loadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact %s: %w", path, err)
	}

	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	if len(a.Trees) == 0 {
		return nil, fmt.Errorf("model artifact %s has no trees", path)
	}
	if len(a.WeatherClasses) == 0 || len(a.ItemClasses) == 0 {
		return nil, fmt.Errorf("model artifact %s is missing encoder classes", path)
	}
	return &a, nil
}
