// README: Model bundle loading (scaler, tree-ensemble regressor, schema).
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names inside the model directory. The directory is produced
// by the training pipeline; this package only consumes it.
const (
	modelFile  = "model.json"
	scalerFile = "scaler.json"
	configFile = "model_config.json"
)

// Estimator is a single regressor usable for spread estimation.
type Estimator interface {
	Predict(x []float64) float64
}

// robustScaler mirrors the fitted scaler artifact: per-feature center and
// scale, applied as (x - center) / scale.
type robustScaler struct {
	Center []float64 `json:"center"`
	Scale  []float64 `json:"scale"`
}

func (s *robustScaler) transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		scale := s.Scale[i]
		if scale == 0 {
			// A constant training column; centering alone is all the fit encodes.
			scale = 1
		}
		out[i] = (v - s.Center[i]) / scale
	}
	return out
}

type forest struct {
	Trees []*Tree `json:"trees"`
}

// predict averages the tree outputs.
func (f *forest) predict(x []float64) float64 {
	var sum float64
	for _, t := range f.Trees {
		sum += t.Predict(x)
	}
	return sum / float64(len(f.Trees))
}

type bundleConfig struct {
	ModelType    string   `json:"model_type"`
	ModelVersion string   `json:"model_version"`
	Features     []string `json:"web_app_features"`
}

// Bundle is the loaded, immutable model artifact set: fitted scaler, trained
// regressor, and the ordered feature schema. It is loaded once at startup and
// safe for unbounded concurrent reads; nothing mutates it after Load returns.
type Bundle struct {
	scaler *robustScaler
	forest *forest
	cfg    bundleConfig

	// subs is decided once at load time: each tree of a true ensemble, nil
	// for single-tree models. No per-request capability probing.
	subs []Estimator
}

// Info describes the loaded model for the /api/model surface.
type Info struct {
	Loaded       bool     `json:"loaded"`
	ModelType    string   `json:"model_type,omitempty"`
	ModelVersion string   `json:"model_version,omitempty"`
	FeatureCount int      `json:"feature_count"`
	FeatureNames []string `json:"feature_names,omitempty"`
	TreeCount    int      `json:"tree_count,omitempty"`
}

// Load reads the three artifacts from dir and validates that they agree with
// each other before returning a usable bundle.
func Load(dir string) (*Bundle, error) {
	var cfg bundleConfig
	if err := readJSON(filepath.Join(dir, configFile), &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Features) == 0 {
		return nil, fmt.Errorf("%s: empty feature schema", configFile)
	}

	var scaler robustScaler
	if err := readJSON(filepath.Join(dir, scalerFile), &scaler); err != nil {
		return nil, err
	}
	if len(scaler.Center) != len(cfg.Features) || len(scaler.Scale) != len(cfg.Features) {
		return nil, fmt.Errorf("%s: scaler fitted for %d features, schema has %d",
			scalerFile, len(scaler.Center), len(cfg.Features))
	}

	var f forest
	if err := readJSON(filepath.Join(dir, modelFile), &f); err != nil {
		return nil, err
	}
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("%s: no trees", modelFile)
	}
	for i, t := range f.Trees {
		if err := t.validate(len(cfg.Features)); err != nil {
			return nil, fmt.Errorf("%s: tree %d: %w", modelFile, i, err)
		}
	}

	b := &Bundle{scaler: &scaler, forest: &f, cfg: cfg}
	if len(f.Trees) > 1 {
		b.subs = make([]Estimator, len(f.Trees))
		for i, t := range f.Trees {
			b.subs[i] = t
		}
	}
	return b, nil
}

// Scale applies the fitted scaler to an aligned feature vector.
func (b *Bundle) Scale(x []float64) []float64 {
	return b.scaler.transform(x)
}

// Predict runs the regressor on a scaled feature vector.
func (b *Bundle) Predict(x []float64) float64 {
	return b.forest.predict(x)
}

// SubEstimators returns the ensemble members, or nil when the model has no
// native ensemble. Callers use them only for spread estimation.
func (b *Bundle) SubEstimators() []Estimator {
	return b.subs
}

// FeatureNames returns the authoritative ordered feature schema.
func (b *Bundle) FeatureNames() []string {
	return b.cfg.Features
}

// Version returns the model version identifier from the artifact config.
func (b *Bundle) Version() string {
	return b.cfg.ModelVersion
}

func (b *Bundle) Info() Info {
	return Info{
		Loaded:       true,
		ModelType:    b.cfg.ModelType,
		ModelVersion: b.cfg.ModelVersion,
		FeatureCount: len(b.cfg.Features),
		FeatureNames: b.cfg.Features,
		TreeCount:    len(b.forest.Trees),
	}
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model artifact: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
