// README: Model bundle loading and inference tests over tiny fixture artifacts.
package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeArtifacts lays out a minimal but valid model directory: two features,
// two stump trees splitting on feature 0 at 5.0.
func writeArtifacts(t *testing.T, modelJSON, scalerJSON, configJSON string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		modelFile:  modelJSON,
		scalerFile: scalerJSON,
		configFile: configJSON,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

const (
	validConfig = `{"model_type": "random_forest", "model_version": "ensemble-v1", "web_app_features": ["distance", "hour"]}`
	validScaler = `{"center": [2.0, 12.0], "scale": [4.0, 6.0]}`
	// Two stumps: distance <= 5 -> 10 / 20, and distance <= 5 -> 12 / 30.
	validModel = `{"trees": [
		{"feature": [0, -2, -2], "threshold": [5.0, 0, 0], "children_left": [1, -1, -1], "children_right": [2, -1, -1], "value": [0, 10.0, 20.0]},
		{"feature": [0, -2, -2], "threshold": [5.0, 0, 0], "children_left": [1, -1, -1], "children_right": [2, -1, -1], "value": [0, 12.0, 30.0]}
	]}`
)

func TestLoad_ValidBundle(t *testing.T) {
	dir := writeArtifacts(t, validModel, validScaler, validConfig)
	b, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, []string{"distance", "hour"}, b.FeatureNames())
	require.Equal(t, "ensemble-v1", b.Version())

	info := b.Info()
	require.True(t, info.Loaded)
	require.Equal(t, 2, info.FeatureCount)
	require.Equal(t, 2, info.TreeCount)
	require.Equal(t, "random_forest", info.ModelType)
}

func TestBundle_Scale(t *testing.T) {
	dir := writeArtifacts(t, validModel, validScaler, validConfig)
	b, err := Load(dir)
	require.NoError(t, err)

	scaled := b.Scale([]float64{6.0, 0.0})
	require.InDelta(t, 1.0, scaled[0], 1e-12)  // (6-2)/4
	require.InDelta(t, -2.0, scaled[1], 1e-12) // (0-12)/6
}

func TestBundle_PredictAveragesTrees(t *testing.T) {
	dir := writeArtifacts(t, validModel, validScaler, validConfig)
	b, err := Load(dir)
	require.NoError(t, err)

	// Left branch of both stumps: (10 + 12) / 2.
	require.InDelta(t, 11.0, b.Predict([]float64{4.0, 0}), 1e-12)
	// Right branch: (20 + 30) / 2.
	require.InDelta(t, 25.0, b.Predict([]float64{6.0, 0}), 1e-12)
	// Split boundary routes left (x <= threshold).
	require.InDelta(t, 11.0, b.Predict([]float64{5.0, 0}), 1e-12)
}

func TestBundle_SubEstimators(t *testing.T) {
	dir := writeArtifacts(t, validModel, validScaler, validConfig)
	b, err := Load(dir)
	require.NoError(t, err)

	subs := b.SubEstimators()
	require.Len(t, subs, 2)
	require.InDelta(t, 20.0, subs[0].Predict([]float64{6.0, 0}), 1e-12)
	require.InDelta(t, 30.0, subs[1].Predict([]float64{6.0, 0}), 1e-12)
}

func TestBundle_SingleTreeHasNoSubEstimators(t *testing.T) {
	single := `{"trees": [
		{"feature": [0, -2, -2], "threshold": [5.0, 0, 0], "children_left": [1, -1, -1], "children_right": [2, -1, -1], "value": [0, 10.0, 20.0]}
	]}`
	dir := writeArtifacts(t, single, validScaler, validConfig)
	b, err := Load(dir)
	require.NoError(t, err)
	require.Nil(t, b.SubEstimators())
}

func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name   string
		model  string
		scaler string
		config string
	}{
		{
			name:   "scaler length disagrees with schema",
			model:  validModel,
			scaler: `{"center": [2.0], "scale": [4.0]}`,
			config: validConfig,
		},
		{
			name:   "empty schema",
			model:  validModel,
			scaler: validScaler,
			config: `{"model_version": "v1", "web_app_features": []}`,
		},
		{
			name:   "no trees",
			model:  `{"trees": []}`,
			scaler: validScaler,
			config: validConfig,
		},
		{
			name:   "tree splits on out-of-range feature",
			model:  `{"trees": [{"feature": [7, -2, -2], "threshold": [5.0, 0, 0], "children_left": [1, -1, -1], "children_right": [2, -1, -1], "value": [0, 10.0, 20.0]}]}`,
			scaler: validScaler,
			config: validConfig,
		},
		{
			name:   "tree child out of range",
			model:  `{"trees": [{"feature": [0, -2, -2], "threshold": [5.0, 0, 0], "children_left": [1, -1, -1], "children_right": [9, -1, -1], "value": [0, 10.0, 20.0]}]}`,
			scaler: validScaler,
			config: validConfig,
		},
		{
			name:   "malformed json",
			model:  `{"trees": [`,
			scaler: validScaler,
			config: validConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeArtifacts(t, tt.model, tt.scaler, tt.config)
			_, err := Load(dir)
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
