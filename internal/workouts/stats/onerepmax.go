package stats

import "math"

// OneRepMax estimates the one-rep max with the Epley formula. A single rep
// is its own max.
func OneRepMax(weight float64, reps int) float64 {
	if reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return weight * (1 + float64(reps)/30)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
