package particles

import (
	"testing"

	"github.com/driftlab/drift/lib/eq"
)

func TestNewTracers(t *testing.T) {
	tr := NewTracers(4)
	if tr.Len() != 4 {
		t.Errorf("Expected 4 tracers, got %d.", tr.Len())
	}
	if !eq.Uint64s(tr.ID, []uint64{0, 1, 2, 3}) {
		t.Errorf("Expected sequential IDs, got %v.", tr.ID)
	}
	for i := range tr.Layer {
		if tr.Layer[i] != 0 {
			t.Errorf("Expected zeroed layer hints, got %v.", tr.Layer)
			break
		}
	}
	if err := tr.Check(); err != nil {
		t.Errorf("Check failed on a fresh container: %s", err.Error())
	}
}

func TestCheck(t *testing.T) {
	tr := NewTracers(3)
	tr.ID = tr.ID[:2]
	if err := tr.Check(); err == nil {
		t.Errorf("Expected Check to fail on mismatched array lengths.")
	}
}

func TestFields(t *testing.T) {
	tr := NewTracers(3)
	tr.X[1] = [3]float64{1, 2, 3}
	tr.Layer[2] = 5

	fields := tr.Fields()
	names := []string{"x", "id", "layer"}
	for _, name := range names {
		f, ok := fields[name]
		if !ok {
			t.Errorf("Fields() is missing '%s'.", name)
			continue
		}
		if f.Name() != name {
			t.Errorf("Field '%s' reports name '%s'.", name, f.Name())
		}
		if f.Len() != tr.Len() {
			t.Errorf("Field '%s' has length %d, expected %d.",
				name, f.Len(), tr.Len())
		}
	}

	// Fields alias the container's arrays rather than copying them.
	x := fields["x"].Data().([][3]float64)
	x[0][0] = 7
	if tr.X[0][0] != 7 {
		t.Errorf("Field data is a copy, not a view.")
	}

	layer := fields["layer"].Data().([]int32)
	if layer[2] != 5 {
		t.Errorf("Expected layer field to see the container's data.")
	}
}
