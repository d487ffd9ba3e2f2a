package utils

import (
	"math"
	"strings"
)

const (
	maxStars  = 5
	fullStar  = "⭐"
	halfStar  = "½"
	emptyStar = "☆"
)

// Rated is implemented by records carrying a star rating.
type Rated interface {
	StarRating() int
}

// AverageRating returns the arithmetic mean of the ratings, or 0 when there are none.
func AverageRating[T Rated](items []T) float64 {
	if len(items) == 0 {
		return 0
	}

	total := 0
	for _, item := range items {
		total += item.StarRating()
	}

	return float64(total) / float64(len(items))
}

// StarDisplay renders a mean rating as full stars, a half star when the
// remainder reaches 0.5, and empty stars up to five positions.
func StarDisplay(mean float64) string {
	if mean < 0 || math.IsNaN(mean) {
		mean = 0
	}
	if mean > maxStars {
		mean = maxStars
	}

	full := int(math.Floor(mean))
	half := mean-float64(full) >= 0.5

	var builder strings.Builder
	builder.WriteString(strings.Repeat(fullStar, full))
	used := full
	if half {
		builder.WriteString(halfStar)
		used++
	}
	builder.WriteString(strings.Repeat(emptyStar, maxStars-used))

	return builder.String()
}
