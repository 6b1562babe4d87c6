package features

import (
	"topo/core"
	"topo/field"
)

const (
	// PeakFloor is the value a sample must exceed to be considered a peak.
	PeakFloor = 0.8
	// peakRadius bounds the neighbourhood: a 5x5 window around the sample.
	peakRadius = 2
)

// FindPeaks returns every sample above PeakFloor that is strictly greater
// than all 24 samples of its 5x5 window. Samples closer than two cells to an
// edge are never peaks. Peaks are ordered column by column and named by
// their index.
func FindPeaks(g *field.Grid) []core.Peak {
	if g == nil {
		return nil
	}
	cols, rows := g.Size()
	size := g.GridSize()

	var peaks []core.Peak
	for i := peakRadius; i < cols-peakRadius; i++ {
		for j := peakRadius; j < rows-peakRadius; j++ {
			v := g.At(i, j)
			if v <= PeakFloor || !isLocalMax(g, i, j, v) {
				continue
			}
			peaks = append(peaks, core.Peak{
				X:      float64(i) * size,
				Y:      float64(j) * size,
				Height: v,
				Name:   PeakName(len(peaks)),
			})
		}
	}
	return peaks
}

func isLocalMax(g *field.Grid, i, j int, v float64) bool {
	for di := -peakRadius; di <= peakRadius; di++ {
		for dj := -peakRadius; dj <= peakRadius; dj++ {
			if di == 0 && dj == 0 {
				continue
			}
			if g.At(i+di, j+dj) >= v {
				return false
			}
		}
	}
	return true
}
