package main

import (
	"sort"

	"github.com/maruel/natural"
)

// SortStrategy orders catalog images. Sort returns a new slice and never
// modifies its input.
type SortStrategy interface {
	Sort(images []ImagePath) []ImagePath
	Name() string
	ID() int
}

// orderStrategy implements SortStrategy around an optional less function;
// a nil less keeps the input order.
type orderStrategy struct {
	id   int
	name string
	less func(a, b ImagePath) bool
}

func (s orderStrategy) Sort(images []ImagePath) []ImagePath {
	result := make([]ImagePath, len(images))
	copy(result, images)
	if s.less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return s.less(result[i], result[j])
		})
	}
	return result
}

func (s orderStrategy) Name() string { return s.name }
func (s orderStrategy) ID() int      { return s.id }

var sortStrategies = []SortStrategy{
	orderStrategy{SortNatural, "Natural", func(a, b ImagePath) bool {
		return natural.Less(a.Path, b.Path)
	}},
	orderStrategy{SortSimple, "Simple", func(a, b ImagePath) bool {
		return a.Path < b.Path
	}},
	orderStrategy{SortEntryOrder, "Entry Order", nil},
}

// GetSortStrategy returns the strategy for the given sort method id, falling
// back to natural order for unknown ids.
func GetSortStrategy(sortMethod int) SortStrategy {
	for _, s := range sortStrategies {
		if s.ID() == sortMethod {
			return s
		}
	}
	return sortStrategies[0]
}

// GetAllSortStrategies returns all available sort strategies
func GetAllSortStrategies() []SortStrategy {
	return sortStrategies
}

// nextSortMethod returns the sort method id following the given one
func nextSortMethod(sortMethod int) int {
	for i, s := range sortStrategies {
		if s.ID() == sortMethod {
			return sortStrategies[(i+1)%len(sortStrategies)].ID()
		}
	}
	return SortNatural
}
