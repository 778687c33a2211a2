/*package particles contains the tracer particle container and the
generic named-field types used to move per-particle data in and out of
drift's I/O layers.*/
package particles

import (
	"fmt"
)

// Particles maps the name of each per-particle field (e.g. "x", "id",
// "layer") to a Field.
type Particles map[string]Field

// Field is a generic interface around one per-particle array.
type Field interface {
	// Name returns the name of the field.
	Name() string
	// Len returns the length of the underlying array.
	Len() int
	// Data returns the underlying array as an interface{}.
	Data() interface{}
}

// Type assertions
var (
	_ Field = &Uint64{}
	_ Field = &Int32{}
	_ Field = &Float64{}
	_ Field = &Vec64{}
)

// Uint64 implements the Field interface for []uint64 data.
type Uint64 struct {
	name string
	data []uint64
}

// NewUint64 creates a field with a given name associated with a given
// array.
func NewUint64(name string, x []uint64) *Uint64 {
	return &Uint64{name, x}
}

func (x *Uint64) Name() string { return x.name }
func (x *Uint64) Len() int { return len(x.data) }
func (x *Uint64) Data() interface{} { return x.data }

// Int32 implements the Field interface for []int32 data. Drift uses it
// for the per-particle auxiliary integer slots, most importantly the
// cached vertical-layer hint read by terrain interpolation.
type Int32 struct {
	name string
	data []int32
}

// NewInt32 creates a field with a given name associated with a given
// array.
func NewInt32(name string, x []int32) *Int32 {
	return &Int32{name, x}
}

func (x *Int32) Name() string { return x.name }
func (x *Int32) Len() int { return len(x.data) }
func (x *Int32) Data() interface{} { return x.data }

// Float64 implements the Field interface for []float64 data.
type Float64 struct {
	name string
	data []float64
}

// NewFloat64 creates a field with a given name associated with a given
// array.
func NewFloat64(name string, x []float64) *Float64 {
	return &Float64{name, x}
}

func (x *Float64) Name() string { return x.name }
func (x *Float64) Len() int { return len(x.data) }
func (x *Float64) Data() interface{} { return x.data }

// Vec64 implements the Field interface for [][3]float64 data.
type Vec64 struct {
	name string
	data [][3]float64
}

// NewVec64 creates a field with a given name associated with a given
// array.
func NewVec64(name string, x [][3]float64) *Vec64 {
	return &Vec64{name, x}
}

func (x *Vec64) Name() string { return x.name }
func (x *Vec64) Len() int { return len(x.data) }
func (x *Vec64) Data() interface{} { return x.data }

// Tracers is drift's standard particle container: positions, IDs, and
// the cached vertical-layer hint that terrain-fitted interpolation
// reads. The hint is owned by whatever moves the particles; the
// interpolation kernels never write it.
type Tracers struct {
	X     [][3]float64
	ID    []uint64
	Layer []int32
}

// NewTracers creates a container for n tracers with IDs 0 through n-1
// and all layer hints set to zero.
func NewTracers(n int) *Tracers {
	t := &Tracers{
		X:     make([][3]float64, n),
		ID:    make([]uint64, n),
		Layer: make([]int32, n),
	}
	for i := range t.ID {
		t.ID[i] = uint64(i)
	}
	return t
}

// Len returns the number of tracers in the container.
func (t *Tracers) Len() int { return len(t.X) }

// Fields returns the container's arrays as named Fields, the form
// drift's I/O layers consume.
func (t *Tracers) Fields() Particles {
	return Particles{
		"x":     NewVec64("x", t.X),
		"id":    NewUint64("id", t.ID),
		"layer": NewInt32("layer", t.Layer),
	}
}

// Check verifies that every array in the container has the same length.
func (t *Tracers) Check() error {
	if len(t.ID) != len(t.X) || len(t.Layer) != len(t.X) {
		return fmt.Errorf("Tracer container has %d positions, %d ids, "+
			"and %d layer hints.", len(t.X), len(t.ID), len(t.Layer))
	}
	return nil
}
