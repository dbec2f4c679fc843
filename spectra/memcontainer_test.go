package spectra

import (
	"fmt"
	"strings"
)

// memContainer is an in-memory Container for reader tests. Keys are
// CleanPath'd.
type memContainer struct {
	strs   map[string]string
	arrays map[string]Array
	groups map[string][]string
	opens  int
	closes int
}

func newMemContainer() *memContainer {
	return &memContainer{
		strs:   map[string]string{},
		arrays: map[string]Array{},
		groups: map[string][]string{},
	}
}

func (m *memContainer) str(path, v string) *memContainer {
	m.strs[CleanPath(path)] = v
	m.addParents(path)
	return m
}

func (m *memContainer) array(path string, data []float64, shape ...int) *memContainer {
	m.arrays[CleanPath(path)] = Array{Data: data, Shape: shape}
	m.addParents(path)
	return m
}

func (m *memContainer) addParents(path string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i := 1; i < len(parts); i++ {
		parent := CleanPath(strings.Join(parts[:i], "/"))
		child := parts[i]
		found := false
		for _, c := range m.groups[parent] {
			if c == child {
				found = true
			}
		}
		if !found {
			m.groups[parent] = append(m.groups[parent], child)
		}
	}
}

func (m *memContainer) opener() OpenFunc {
	return func(string) (Container, error) {
		m.opens++
		return m, nil
	}
}

func (m *memContainer) Has(path string) bool {
	p := CleanPath(path)
	_, s := m.strs[p]
	_, a := m.arrays[p]
	_, g := m.groups[p]
	return s || a || g
}

func (m *memContainer) ReadString(path string) (string, error) {
	s, ok := m.strs[CleanPath(path)]
	if !ok {
		return "", fmt.Errorf("%w: no string dataset %s", ErrStructure, CleanPath(path))
	}
	return s, nil
}

func (m *memContainer) ReadArray(path string) (Array, error) {
	a, ok := m.arrays[CleanPath(path)]
	if !ok {
		return Array{}, fmt.Errorf("%w: no numeric dataset %s", ErrStructure, CleanPath(path))
	}
	data := make([]float64, len(a.Data))
	copy(data, a.Data)
	return Array{Data: data, Shape: a.Shape}, nil
}

func (m *memContainer) Members(path string) ([]string, error) {
	g, ok := m.groups[CleanPath(path)]
	if !ok {
		return nil, fmt.Errorf("%w: no group %s", ErrStructure, CleanPath(path))
	}
	return g, nil
}

func (m *memContainer) Close() error {
	m.closes++
	return nil
}

// seq returns start, start+1, ... (n values).
func seq(start float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)
	}
	return out
}
