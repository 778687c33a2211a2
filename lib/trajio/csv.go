package trajio

/* csv.go exports trajectories as flat CSV tables, one row per particle
per recorded step, for plotting and spreadsheet-level inspection. */

import (
	"os"

	"github.com/gocarina/gocsv"
)

// TrackRecord is one row of a trajectory CSV file.
type TrackRecord struct {
	Step  int     `csv:"step"`
	Time  float64 `csv:"time"`
	ID    uint64  `csv:"id"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Z     float64 `csv:"z"`
	Layer int32   `csv:"layer"`
}

// WriteCSV writes a snapshot to fname as CSV, step-major and
// particle-minor.
func WriteCSV(fname string, snap *Snapshot) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer fp.Close()

	records := make([]*TrackRecord, 0, len(snap.Times)*len(snap.IDs))
	for s := range snap.Times {
		for i := range snap.IDs {
			records = append(records, &TrackRecord{
				Step: s, Time: snap.Times[s], ID: snap.IDs[i],
				X: snap.X[s][i][0], Y: snap.X[s][i][1], Z: snap.X[s][i][2],
				Layer: snap.Layers[s][i],
			})
		}
	}

	return gocsv.MarshalFile(&records, fp)
}
