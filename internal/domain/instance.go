package domain

import (
	"fmt"
	"time"
)

type Encoding string

const (
	EncodingWindowIndicator Encoding = "windowed-indicator"
	EncodingWindowStart     Encoding = "window-start"
)

// DefaultEncoding is the well-proven windowed-indicator formulation.
const DefaultEncoding = EncodingWindowIndicator

// ParseEncoding accepts the canonical names plus the short aliases "a" and "b".
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "", string(EncodingWindowIndicator), "indicator", "a":
		return EncodingWindowIndicator, nil
	case string(EncodingWindowStart), "start", "b":
		return EncodingWindowStart, nil
	default:
		return "", configErrorf(ConfigErrUnknownEncoding, "unknown encoding %q (want %s or %s)", s, EncodingWindowIndicator, EncodingWindowStart)
	}
}

type Bound string

const (
	BoundEq Bound = "eq"
	BoundLe Bound = "le"
	BoundGe Bound = "ge"
)

// CellRef names one occupancy cell by item and position id.
type CellRef struct {
	ItemID     string
	PositionID string
}

// SideConstraint is a caller-supplied linear restriction: the number of
// listed cells that are occupied must satisfy Bound against Value.
type SideConstraint struct {
	Name  string
	Cells []CellRef
	Bound Bound
	Value int
}

// Instance is a complete placement problem.
type Instance struct {
	ID              string
	Name            string
	TimelineLength  int
	Items           []Item
	SideConstraints []SideConstraint
	CreatedAt       time.Time
}

// Positions returns the instance's timeline.
func (inst *Instance) Positions() []Position {
	return NewTimeline(inst.TimelineLength)
}

// Item looks up an item by id.
func (inst *Instance) Item(id string) (Item, bool) {
	for _, it := range inst.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Validate checks lengths and the timeline. Side-constraint references are
// checked by the builder that consumes them.
func (inst *Instance) Validate() error {
	if inst.TimelineLength <= 0 {
		return configErrorf(ConfigErrInvalidTimeline, "timeline length %d must be positive", inst.TimelineLength)
	}
	if err := ValidateItems(inst.Items, inst.TimelineLength); err != nil {
		return err
	}
	for _, sc := range inst.SideConstraints {
		if err := sc.validateBound(); err != nil {
			return err
		}
	}
	return nil
}

func (sc SideConstraint) validateBound() error {
	switch sc.Bound {
	case BoundEq, BoundLe, BoundGe:
	default:
		return configErrorf(ConfigErrInvalidBound, "side constraint %q: unknown bound %q", sc.Name, sc.Bound)
	}
	if sc.Value < 0 {
		return configErrorf(ConfigErrInvalidBound, "side constraint %q: negative bound %d", sc.Name, sc.Value)
	}
	return nil
}

// AtOrAfter requires item's whole run to lie on positions with ordinal >= ordinal.
func AtOrAfter(item Item, positions []Position, ordinal int) SideConstraint {
	return sideRange(item, positions, fmt.Sprintf("%s_ge_%d", item.ID, ordinal), func(p Position) bool {
		return p.Ordinal >= ordinal
	})
}

// AtOrBefore requires item's whole run to lie on positions with ordinal <= ordinal.
func AtOrBefore(item Item, positions []Position, ordinal int) SideConstraint {
	return sideRange(item, positions, fmt.Sprintf("%s_le_%d", item.ID, ordinal), func(p Position) bool {
		return p.Ordinal <= ordinal
	})
}

func sideRange(item Item, positions []Position, name string, keep func(Position) bool) SideConstraint {
	sc := SideConstraint{Name: name, Bound: BoundEq, Value: item.Length}
	for _, p := range positions {
		if keep(p) {
			sc.Cells = append(sc.Cells, CellRef{ItemID: item.ID, PositionID: p.ID})
		}
	}
	return sc
}
