package gate

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

var ErrUnknownGate = errors.New("gate is not registered")

var defaultRegistry *Registry

// Gate describes one operation of the supported set: its wire arity, its
// parameter arity and the reference matrix.
type Gate struct {
	Name      string
	NumWires  int
	NumParams int

	matrixFn func(params []float64) *mat.CDense
}

func (g Gate) Dim() int {
	return 1 << uint(g.NumWires)
}

func (g Gate) Matrix(params ...float64) (*mat.CDense, error) {
	if len(params) != g.NumParams {
		return nil, fmt.Errorf("gate %s takes %d parameter(s), got %d",
			g.Name, g.NumParams, len(params))
	}
	return g.matrixFn(params), nil
}

// Adjoint derives the conjugate-transpose gate. The derived name marks the
// gate so device capability checks can treat adjoints separately.
func (g Gate) Adjoint() Gate {
	base := g
	return Gate{
		Name:      AdjointName(g.Name),
		NumWires:  g.NumWires,
		NumParams: g.NumParams,
		matrixFn: func(params []float64) *mat.CDense {
			return Dagger(base.matrixFn(params))
		},
	}
}

func AdjointName(name string) string {
	return "Adjoint(" + name + ")"
}

type Registry struct {
	gates map[string]Gate
}

func (r *Registry) Register(gates ...Gate) error {
	for _, g := range gates {
		if _, ok := r.gates[g.Name]; ok {
			return fmt.Errorf("gate:%s is already registered", g.Name)
		}
		zap.L().Debug(fmt.Sprintf("registering gate %s", g.Name))
		r.gates[g.Name] = g
	}
	return nil
}

func (r *Registry) Lookup(name string) (Gate, error) {
	g, ok := r.gates[name]
	if !ok {
		return Gate{}, fmt.Errorf("%w: %s", ErrUnknownGate, name)
	}
	return g, nil
}

func (r *Registry) Names() []string {
	names := []string{}
	for name := range r.gates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func NewRegistry(gates ...Gate) (*Registry, error) {
	r := &Registry{gates: make(map[string]Gate)}
	if err := r.Register(gates...); err != nil {
		return nil, err
	}
	return r, nil
}

// DefaultRegistry holds every gate of the supported set. The instance is
// shared; descriptors are immutable.
func DefaultRegistry() *Registry {
	if defaultRegistry != nil {
		return defaultRegistry
	}
	all := []Gate{}
	all = append(all, SingleQubit()...)
	all = append(all, SingleQubitParam()...)
	all = append(all, TwoQubit()...)
	all = append(all, TwoQubitParam()...)
	all = append(all, ThreeQubit()...)
	all = append(all, Rot())
	r, err := NewRegistry(all...)
	if err != nil {
		panic(err)
	}
	defaultRegistry = r
	return r
}

// WiresFromDim recovers the wire count of a unitary, failing on dimensions
// that are not a power of two.
func WiresFromDim(dim int) (int, error) {
	if dim < 2 {
		return 0, fmt.Errorf("matrix dimension %d is too small", dim)
	}
	n := int(math.Round(math.Log2(float64(dim))))
	if 1<<uint(n) != dim {
		return 0, fmt.Errorf("matrix dimension %d is not a power of two", dim)
	}
	return n, nil
}
