// README: CART regression tree evaluation over exported node arrays.
package model

import "fmt"

// leafMarker is the feature index exporters write for leaf nodes.
const leafMarker = -2

// Tree is a single regression tree in the node-array layout produced by the
// training pipeline's JSON export: parallel arrays indexed by node id.
// Internal nodes route on Feature[i] <= Threshold[i]; leaves carry the
// regression value.
type Tree struct {
	Feature   []int     `json:"feature"`
	Threshold []float64 `json:"threshold"`
	Left      []int     `json:"children_left"`
	Right     []int     `json:"children_right"`
	Value     []float64 `json:"value"`
}

// Predict walks the tree from the root and returns the leaf value.
func (t *Tree) Predict(x []float64) float64 {
	i := 0
	for t.Feature[i] >= 0 {
		if x[t.Feature[i]] <= t.Threshold[i] {
			i = t.Left[i]
		} else {
			i = t.Right[i]
		}
	}
	return t.Value[i]
}

// validate checks that the node arrays are mutually consistent so Predict
// can never index out of range at inference time.
func (t *Tree) validate(featureCount int) error {
	n := len(t.Feature)
	if n == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	if len(t.Threshold) != n || len(t.Left) != n || len(t.Right) != n || len(t.Value) != n {
		return fmt.Errorf("tree node arrays disagree on length")
	}
	for i := 0; i < n; i++ {
		f := t.Feature[i]
		if f >= 0 {
			if f >= featureCount {
				return fmt.Errorf("node %d splits on feature %d, model has %d features", i, f, featureCount)
			}
			if t.Left[i] < 0 || t.Left[i] >= n || t.Right[i] < 0 || t.Right[i] >= n {
				return fmt.Errorf("node %d has child out of range", i)
			}
			if t.Left[i] <= i || t.Right[i] <= i {
				return fmt.Errorf("node %d has non-forward child link", i)
			}
		} else if f != leafMarker && f != -1 {
			return fmt.Errorf("node %d has invalid feature index %d", i, f)
		}
	}
	return nil
}
