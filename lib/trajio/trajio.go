/*package trajio writes and reads drift trajectory files. A trajectory
file stores the particle IDs and the per-step positions and layer hints
of a tracer run in a single zstd-compressed block, behind a small
uncompressed header holding the magic number, the mesh dimensionality,
and the step times.*/
package trajio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/driftlab/drift/lib/particles"

	"github.com/DataDog/zstd"
)

const (
	// MagicNumber is an arbitrary number at the start of all drift
	// trajectory files which should help identify when the code is run
	// on something else by accident.
	MagicNumber = 0xd21f7a17
	// ReverseMagicNumber is the magic number if read on a machine with
	// flipped endianness.
	ReverseMagicNumber = 0x177a1fd2
	Version            = 1

	compressionLevel = 1
)

// Writer accumulates trajectory steps in memory and writes them to disk
// in one shot. The pattern is to create a Writer with NewWriter, call
// AddStep once per recorded step, and call Flush at the end of the run.
type Writer struct {
	fname  string
	order  binary.ByteOrder
	dim    int
	nPart  int
	times  []float64
	raw    *bytes.Buffer
	gotIDs bool
}

// NewWriter creates a Writer targeting a given file, for a run with a
// given mesh dimensionality and particle count, using a given byte
// ordering.
func NewWriter(fname string, dim, nPart int, order binary.ByteOrder) *Writer {
	return &Writer{
		fname: fname, order: order, dim: dim, nPart: nPart,
		raw: bytes.NewBuffer([]byte{}),
	}
}

// AddStep appends the current state of the tracer container as one
// recorded step at a given time. The first call also records the
// particle IDs, which must not change over the run.
func (wr *Writer) AddStep(time float64, tr *particles.Tracers) error {
	if tr.Len() != wr.nPart {
		return fmt.Errorf("Trajectory file stores %d particles, but was "+
			"given a step with %d particles.", wr.nPart, tr.Len())
	}

	if !wr.gotIDs {
		if err := binary.Write(wr.raw, wr.order, tr.ID); err != nil {
			return err
		}
		wr.gotIDs = true
	}

	if err := binary.Write(wr.raw, wr.order, tr.X); err != nil {
		return err
	}
	if err := binary.Write(wr.raw, wr.order, tr.Layer); err != nil {
		return err
	}

	wr.times = append(wr.times, time)
	return nil
}

// Flush compresses the accumulated steps and writes the file to disk.
func (wr *Writer) Flush() error {
	fp, err := os.Create(wr.fname)
	if err != nil {
		return err
	}
	defer fp.Close()

	hd := []interface{}{
		uint32(MagicNumber), uint32(Version),
		int64(wr.dim), int64(wr.nPart), int64(len(wr.times)),
	}
	for _, x := range hd {
		if err := binary.Write(fp, wr.order, x); err != nil {
			return err
		}
	}
	if err := binary.Write(fp, wr.order, wr.times); err != nil {
		return err
	}

	block, err := zstd.CompressLevel(nil, wr.raw.Bytes(), compressionLevel)
	if err != nil {
		return err
	}
	if err := binary.Write(fp, wr.order, int64(len(block))); err != nil {
		return err
	}
	_, err = fp.Write(block)
	return err
}

// Snapshot is the in-memory form of a trajectory file.
type Snapshot struct {
	Dim    int
	Times  []float64
	IDs    []uint64
	X      [][][3]float64 // X[step][particle]
	Layers [][]int32      // Layers[step][particle]
}

// ReadFile reads a trajectory file written with Writer using a given
// byte ordering.
func ReadFile(fname string, order binary.ByteOrder) (*Snapshot, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	var magic, version uint32
	if err := binary.Read(fp, order, &magic); err != nil {
		return nil, err
	}
	if magic == ReverseMagicNumber {
		return nil, fmt.Errorf("%s was written with flipped endianness; "+
			"read it with the opposite byte order.", fname)
	} else if magic != MagicNumber {
		return nil, fmt.Errorf("%s is not a drift trajectory file.", fname)
	}
	if err := binary.Read(fp, order, &version); err != nil {
		return nil, err
	}
	if version != Version {
		return nil, fmt.Errorf("%s has file version %d, but this version "+
			"of drift reads version %d.", fname, version, Version)
	}

	var dim, nPart, nStep int64
	for _, x := range []*int64{&dim, &nPart, &nStep} {
		if err := binary.Read(fp, order, x); err != nil {
			return nil, err
		}
	}

	snap := &Snapshot{
		Dim:   int(dim),
		Times: make([]float64, nStep),
		IDs:   make([]uint64, nPart),
	}
	if err := binary.Read(fp, order, snap.Times); err != nil {
		return nil, err
	}

	var blockLen int64
	if err := binary.Read(fp, order, &blockLen); err != nil {
		return nil, err
	}
	block := make([]byte, blockLen)
	if _, err := io.ReadFull(fp, block); err != nil {
		return nil, err
	}
	raw, err := zstd.Decompress(nil, block)
	if err != nil {
		return nil, err
	}

	rd := bytes.NewReader(raw)
	if err := binary.Read(rd, order, snap.IDs); err != nil {
		return nil, err
	}
	snap.X = make([][][3]float64, nStep)
	snap.Layers = make([][]int32, nStep)
	for s := range snap.X {
		snap.X[s] = make([][3]float64, nPart)
		snap.Layers[s] = make([]int32, nPart)
		if err := binary.Read(rd, order, snap.X[s]); err != nil {
			return nil, err
		}
		if err := binary.Read(rd, order, snap.Layers[s]); err != nil {
			return nil, err
		}
	}

	return snap, nil
}
