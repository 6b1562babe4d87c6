// Package features classifies river-level chains into lakes and streams and
// finds named peaks on the field.
package features

import (
	"math/rand"
	"sync"
)

// LakeNames is the pool lakes draw their labels from at random.
var LakeNames = []string{
	"Lake Tecumseh",
	"Beaver Pond",
	"Loon Lake",
	"Crystal Lake",
	"Otter Pond",
	"Heron Lake",
	"Cedar Lake",
	"Moose Lake",
	"Echo Lake",
	"Trout Pond",
}

// PeakNames is the pool peaks are labelled from by index.
var PeakNames = []string{
	"Eagle Peak",
	"Bald Mountain",
	"Summit Ridge",
	"Thunder Peak",
	"Granite Dome",
	"Hawk Hill",
	"Pine Knob",
	"Lookout Point",
	"Bear Mountain",
	"Timber Crest",
	"Wolf Ridge",
	"Sentinel Peak",
	"Falcon Butte",
	"Raven Rock",
	"Cougar Summit",
}

// PeakName returns the label for the i-th detected peak. Names wrap around
// after the pool is exhausted, so the 16th peak reuses the first name.
func PeakName(i int) string {
	if i < 0 {
		i = -i
	}
	return PeakNames[i%len(PeakNames)]
}

// Namer draws lake names uniformly at random. It is safe for concurrent use.
type Namer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewNamer creates a namer over the given source.
func NewNamer(rng *rand.Rand) *Namer {
	return &Namer{rng: rng}
}

// LakeName returns a random name from LakeNames.
func (n *Namer) LakeName() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return LakeNames[n.rng.Intn(len(LakeNames))]
}
