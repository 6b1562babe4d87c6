package features

import (
	"topo/core"
	"topo/geometry"
	"topo/smooth"
)

// MinLakePoints is the chain length a closed chain must exceed to count as a lake.
const MinLakePoints = 10

// Water is the classified output of the river-threshold pass.
type Water struct {
	Lakes   []core.Lake
	Streams []string
}

// IsLake reports whether a chain is a lake: geometrically closed and longer
// than MinLakePoints points.
func IsLake(c core.Chain) bool {
	return geometry.IsClosed(c.Points) && c.Len() > MinLakePoints
}

// Classify splits river-level chains into lakes and streams. Lakes get a
// closed smoothed path, the mean of their points as label position and a
// random name. Every other chain becomes a stream path.
func Classify(chains []core.Chain, namer *Namer, tolerance float64) Water {
	var w Water
	for _, c := range chains {
		if IsLake(c) {
			centroid := geometry.Centroid(c.Points)
			w.Lakes = append(w.Lakes, core.Lake{
				Path: smooth.Path(geometry.Simplify(c.Points, tolerance), true),
				X:    centroid.X,
				Y:    centroid.Y,
				Name: namer.LakeName(),
			})
			continue
		}
		if p := smooth.Chain(c, tolerance); p != "" {
			w.Streams = append(w.Streams, p)
		}
	}
	return w
}
