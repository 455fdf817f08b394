// README: Strict alignment of a feature record against the model schema.
package features

import "fmt"

// SchemaMismatchError reports a feature named by the model schema that the
// derivation step did not produce. It signals drift between the deployed
// model artifact and this code; it is never silently patched with a default.
type SchemaMismatchError struct {
	Name string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("model schema names feature %q which is not derived", e.Name)
}

// Align emits the record's values in the exact order the schema dictates.
// The returned vector always has len(schema) entries on success.
func Align(rec Record, schema []string) ([]float64, error) {
	vec := make([]float64, len(schema))
	for i, name := range schema {
		v, ok := rec[name]
		if !ok {
			return nil, &SchemaMismatchError{Name: name}
		}
		vec[i] = v
	}
	return vec, nil
}
