package nn

import (
	"fmt"
	"sort"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// StateDict returns every parameter keyed by a stable name:
//
//	layers.<l>.neurons.<n>.w.<i>
//	layers.<l>.neurons.<n>.b
func (m *MLP) StateDict() map[string]*autodiff.Value {
	state := make(map[string]*autodiff.Value)
	for li, l := range m.layers {
		for ni, n := range l.neurons {
			prefix := fmt.Sprintf("layers.%d.neurons.%d", li, ni)
			for wi, w := range n.w {
				state[fmt.Sprintf("%s.w.%d", prefix, wi)] = w
			}
			state[prefix+".b"] = n.b
		}
	}
	return state
}

// LoadStateDict overwrites parameter data from a name → value map.
//
// Every parameter must be present and no unknown names are accepted.
// Parameters are left untouched when an error is returned.
func (m *MLP) LoadStateDict(values map[string]float64) error {
	state := m.StateDict()

	var unknown []string
	for name := range values {
		if _, ok := state[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("nn: unknown parameters %v", unknown)
	}

	for name := range state {
		if _, ok := values[name]; !ok {
			return fmt.Errorf("nn: missing parameter %q", name)
		}
	}

	for name, p := range state {
		p.SetData(values[name])
	}
	return nil
}

// StateValues returns the current data of every parameter, keyed like
// StateDict.
func (m *MLP) StateValues() map[string]float64 {
	state := m.StateDict()
	values := make(map[string]float64, len(state))
	for name, p := range state {
		values[name] = p.Data()
	}
	return values
}
