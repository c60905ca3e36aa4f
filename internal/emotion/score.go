// Package emotion holds the emotion classification domain model: labeled
// scores, their aggregation into a profile, and trigger-keyword matching.
package emotion

import "math"

// Score is a single labeled classification score.
type Score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Round3 rounds v to three decimal places, ties to even.
func Round3(v float64) float64 {
	return math.RoundToEven(v*1000) / 1000
}

// Round2 rounds v to two decimal places, ties to even.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
