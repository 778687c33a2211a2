package main

/* run.go contains the core loop of drift's "advect" mode. */

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/driftlab/drift/lib/advect"
	"github.com/driftlab/drift/lib/config"
	"github.com/driftlab/drift/lib/dispersion"
	derror "github.com/driftlab/drift/lib/error"
	"github.com/driftlab/drift/lib/particles"
	"github.com/driftlab/drift/lib/trajio"
)

func runAdvect(cfg *config.Config) {
	s := newRunSetup(cfg)

	x0 := make([][3]float64, len(s.tr.X))
	copy(x0, s.tr.X)

	var wr *trajio.Writer
	snap := &trajio.Snapshot{Dim: s.geom.Dim, IDs: s.tr.ID}
	if cfg.Output.Dir != "" {
		if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
			derror.External("Could not create the output directory "+
				"'%s': %s", cfg.Output.Dir, err.Error())
		}
		if cfg.Output.Snapshot {
			wr = trajio.NewWriter(
				filepath.Join(cfg.Output.Dir, "trajectory.drift"),
				s.geom.Dim, s.tr.Len(), binary.LittleEndian,
			)
		}
	}

	record := func(t float64) {
		if wr != nil {
			if err := wr.AddStep(t, s.tr); err != nil {
				derror.External("Could not record a trajectory step: %s",
					err.Error())
			}
		}
		x := make([][3]float64, len(s.tr.X))
		copy(x, s.tr.X)
		layers := make([]int32, len(s.tr.Layer))
		copy(layers, s.tr.Layer)
		snap.Times = append(snap.Times, t)
		snap.X = append(snap.X, x)
		snap.Layers = append(snap.Layers, layers)
	}

	record(0)
	maxCFL := 0.0
	for step := 1; step <= cfg.Advect.Steps; step++ {
		maxSpeed := stepOnce(cfg, s)
		if c := advect.CFL(s.geom, maxSpeed, cfg.Advect.Dt); c > maxCFL {
			maxCFL = c
		}
		if step%cfg.Advect.RecordEvery == 0 {
			record(float64(step) * cfg.Advect.Dt)
		}
	}

	if wr != nil {
		if err := wr.Flush(); err != nil {
			derror.External("Could not write the trajectory file: %s",
				err.Error())
		}
	}
	if cfg.Output.Dir != "" && cfg.Output.CSV {
		fname := filepath.Join(cfg.Output.Dir, "trajectory.csv")
		if err := trajio.WriteCSV(fname, snap); err != nil {
			derror.External("Could not write '%s': %s", fname, err.Error())
		}
	}

	sum := dispersion.Summarize(x0, s.tr.X)
	fmt.Printf("advected %d tracers for %d steps (max CFL %.3f)\n",
		s.tr.Len(), cfg.Advect.Steps, maxCFL)
	fmt.Printf("mean displacement %.4g, rms %.4g\n", sum.MeanDisp, sum.RMSDisp)
	fmt.Printf("dispersion axis ratios c/a = %.3f, b/a = %.3f\n",
		sum.CA, sum.BA)
}

// stepOnce advances every tracer one step, fanning the container out
// across threads in independent chunks. The kernels read only immutable
// fields and each chunk writes only its own particles, so no locking is
// needed.
func stepOnce(cfg *config.Config, s *runSetup) float64 {
	nChunk := runtime.GOMAXPROCS(0)
	n := s.tr.Len()
	if nChunk > n {
		nChunk = n
	}

	speeds := make([]float64, nChunk)
	wg := &sync.WaitGroup{}
	for c := 0; c < nChunk; c++ {
		lo, hi := c*n/nChunk, (c+1)*n/nChunk
		chunk := &particles.Tracers{
			X: s.tr.X[lo:hi], ID: s.tr.ID[lo:hi], Layer: s.tr.Layer[lo:hi],
		}

		wg.Add(1)
		go func(c int, chunk *particles.Tracers) {
			defer wg.Done()
			speeds[c] = stepChunk(cfg, s, chunk)
		}(c, chunk)
	}
	wg.Wait()

	maxSpeed := 0.0
	for _, v := range speeds {
		if v > maxSpeed {
			maxSpeed = v
		}
	}
	return maxSpeed
}

func stepChunk(cfg *config.Config, s *runSetup, chunk *particles.Tracers) float64 {
	dt := cfg.Advect.Dt
	switch {
	case s.height != nil:
		return advect.MidpointTerrain(
			s.geom, s.vel, s.height, chunk, dt, s.nLayers)
	case cfg.Advect.Scheme == "euler":
		return advect.Euler(s.geom, s.vel, chunk, dt)
	default:
		return advect.Midpoint(s.geom, s.vel, chunk, dt)
	}
}
