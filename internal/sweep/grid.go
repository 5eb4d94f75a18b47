package sweep

import (
	"iter"
	"maps"

	"github.com/rxtech-lab/argo-sweep/internal/types"
	"github.com/rxtech-lab/argo-sweep/pkg/errors"
)

// MaxCombinations bounds the length of one axis and the size of a whole grid.
const MaxCombinations = 1_000_000

// Range is an inclusive integer interval for one parameter axis.
type Range struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	Start int    `yaml:"start" json:"start"`
	End   int    `yaml:"end" json:"end"`
	// Step defaults to 1 when zero.
	Step int `yaml:"step" json:"step" validate:"gte=0"`
}

// Values lists the axis values in ascending order. It is empty when the bounds or the step are
// invalid or the axis is longer than MaxCombinations.
func (r Range) Values() []int {
	n := r.Len()
	if n > MaxCombinations {
		return []int{}
	}

	step := r.step()
	values := make([]int, 0, n)

	for i := 0; i < n; i++ {
		values = append(values, r.Start+i*step)
	}

	return values
}

// Len is the number of values on the axis, saturated at MaxCombinations+1.
func (r Range) Len() int {
	if r.Start > r.End || r.step() <= 0 {
		return 0
	}

	// the unsigned difference is exact even when End-Start overflows int
	steps := (uint64(r.End) - uint64(r.Start)) / uint64(r.step())
	if steps >= MaxCombinations {
		return MaxCombinations + 1
	}

	return int(steps) + 1
}

func (r Range) step() int {
	if r.Step == 0 {
		return 1
	}

	return r.Step
}

func (r Range) validate() error {
	if r.Name == "" {
		return errors.New(errors.ErrCodeInvalidRange, "range name is required")
	}

	if r.Step < 0 {
		return errors.Newf(errors.ErrCodeInvalidRange, "range %s: step must be positive, got %d", r.Name, r.Step)
	}

	if r.Start > r.End {
		return errors.Newf(errors.ErrCodeInvalidRange, "range %s: start %d is greater than end %d", r.Name, r.Start, r.End)
	}

	if r.Len() > MaxCombinations {
		return errors.Newf(errors.ErrCodeInvalidRange, "range %s has more than %d values", r.Name, MaxCombinations)
	}

	return nil
}

// Grid is the Cartesian product of a set of ranges.
type Grid struct {
	axes   []Range
	values [][]int
}

// NewGrid validates ranges and builds the grid. Axis names must be unique.
func NewGrid(ranges ...Range) (*Grid, error) {
	if len(ranges) == 0 {
		return nil, errors.New(errors.ErrCodeSweepNoAxes, "at least one parameter range is required")
	}

	seen := make(map[string]bool, len(ranges))
	values := make([][]int, 0, len(ranges))
	size := 1

	for _, r := range ranges {
		if err := r.validate(); err != nil {
			return nil, err
		}

		if seen[r.Name] {
			return nil, errors.Newf(errors.ErrCodeInvalidRange, "duplicate range for parameter %s", r.Name)
		}

		// size * Len stays below MaxCombinations squared, far from overflow
		size *= r.Len()
		if size > MaxCombinations {
			return nil, errors.Newf(errors.ErrCodeInvalidRange, "grid has more than %d combinations", MaxCombinations)
		}

		seen[r.Name] = true
		values = append(values, r.Values())
	}

	axes := make([]Range, len(ranges))
	copy(axes, ranges)

	return &Grid{axes: axes, values: values}, nil
}

// Axes returns a copy of the grid axes.
func (g *Grid) Axes() []Range {
	axes := make([]Range, len(g.axes))
	copy(axes, g.axes)

	return axes
}

// Size is the number of combinations, the product of the axis lengths.
func (g *Grid) Size() int {
	size := 1
	for _, values := range g.values {
		size *= len(values)
	}

	return size
}

// All enumerates every combination. The last axis varies fastest and Index counts from zero.
func (g *Grid) All() iter.Seq[types.Combination] {
	return func(yield func(types.Combination) bool) {
		cursor := make([]int, len(g.values))
		current := make(map[string]int, len(g.axes))

		total := g.Size()

		for index := 0; index < total; index++ {
			for axis, pos := range cursor {
				current[g.axes[axis].Name] = g.values[axis][pos]
			}

			if !yield(types.Combination{Index: index, Params: maps.Clone(current)}) {
				return
			}

			for axis := len(cursor) - 1; axis >= 0; axis-- {
				cursor[axis]++
				if cursor[axis] < len(g.values[axis]) {
					break
				}

				cursor[axis] = 0
			}
		}
	}
}
