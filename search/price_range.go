package search

import (
	"fmt"
	"strconv"
	"strings"
)

// PriceRange is the state behind the dual thumb price slider. Floor and
// Ceiling are the slider bounds and Min/Max the thumb positions.
type PriceRange struct {
	Floor   int64 `json:"floor"`
	Ceiling int64 `json:"ceiling"`
	Step    int64 `json:"step"`
	Min     int64 `json:"min"`
	Max     int64 `json:"max"`
}

func NewPriceRange(floor, ceiling, step int64) PriceRange {
	if ceiling < floor {
		floor, ceiling = ceiling, floor
	}
	if step <= 0 {
		step = 1
	}
	return PriceRange{Floor: floor, Ceiling: ceiling, Step: step, Min: floor, Max: ceiling}
}

func (p PriceRange) clamp(v int64) int64 {
	if v < p.Floor {
		return p.Floor
	}
	if v > p.Ceiling {
		return p.Ceiling
	}
	return v
}

func (p PriceRange) snap(v int64) int64 {
	if p.Step <= 1 {
		return v
	}
	off := v - p.Floor
	off = (off + p.Step/2) / p.Step * p.Step
	return p.clamp(p.Floor + off)
}

// Normalize clamps both thumbs to the bounds, snaps them to the step grid and
// swaps them if they crossed.
func (p PriceRange) Normalize() PriceRange {
	p.Min = p.snap(p.clamp(p.Min))
	p.Max = p.snap(p.clamp(p.Max))
	if p.Min > p.Max {
		p.Min, p.Max = p.Max, p.Min
	}
	return p
}

// SetMin moves the lower thumb. It never passes the upper thumb.
func (p PriceRange) SetMin(v int64) PriceRange {
	v = p.snap(p.clamp(v))
	if v > p.Max {
		v = p.Max
	}
	p.Min = v
	return p
}

// SetMax moves the upper thumb. It never passes the lower thumb.
func (p PriceRange) SetMax(v int64) PriceRange {
	v = p.snap(p.clamp(v))
	if v < p.Min {
		v = p.Min
	}
	p.Max = v
	return p
}

// IsFull reports whether the range spans the whole slider, i.e. applies no
// filtering.
func (p PriceRange) IsFull() bool {
	return p.Min <= p.Floor && p.Max >= p.Ceiling
}

// Bounds returns the query bounds where zero means unbounded on that side.
func (p PriceRange) Bounds() (int64, int64) {
	var lo, hi int64
	if p.Min > p.Floor {
		lo = p.Min
	}
	if p.Max < p.Ceiling {
		hi = p.Max
	}
	return lo, hi
}

// ParsePriceRange reads min/max query values (empty means the bound itself)
// and returns the normalized range. Values may carry "$" and "," for
// convenience.
func ParsePriceRange(minStr, maxStr string, base PriceRange) (PriceRange, error) {
	p := base
	p.Min, p.Max = base.Floor, base.Ceiling
	if minStr != "" {
		v, err := parsePrice(minStr)
		if err != nil {
			return p, fmt.Errorf("bad value for min_price: %w", err)
		}
		p.Min = v
	}
	if maxStr != "" {
		v, err := parsePrice(maxStr)
		if err != nil {
			return p, fmt.Errorf("bad value for max_price: %w", err)
		}
		p.Max = v
	}
	return p.Normalize(), nil
}

func parsePrice(s string) (int64, error) {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative price %d", v)
	}
	return v, nil
}
