// Package generation produces random placement instances.
package generation

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/google/uuid"
)

// Params bounds a random instance.
type Params struct {
	Items     int
	Positions int
	MaxLength int
}

// DefaultParams is twenty items of length one or two on a hundred positions.
func DefaultParams() Params {
	return Params{Items: 20, Positions: 100, MaxLength: 2}
}

// Validate rejects parameters that cannot describe an instance.
func (p Params) Validate() error {
	if p.Items <= 0 {
		return fmt.Errorf("items must be positive, got %d", p.Items)
	}
	if p.Positions <= 0 {
		return fmt.Errorf("positions must be positive, got %d", p.Positions)
	}
	if p.MaxLength <= 0 {
		return fmt.Errorf("max length must be positive, got %d", p.MaxLength)
	}
	if p.MaxLength > p.Positions {
		return fmt.Errorf("max length %d exceeds %d positions", p.MaxLength, p.Positions)
	}
	return nil
}

// RandomInstance draws every item length uniformly from [1, MaxLength].
// The same rng seed always yields the same items. Instances whose lengths
// sum past Positions are returned as drawn; they are infeasible.
func RandomInstance(rng *rand.Rand, p Params) (*domain.Instance, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	inst := &domain.Instance{
		ID:             uuid.New().String(),
		Name:           fmt.Sprintf("random %dx%d", p.Items, p.Positions),
		TimelineLength: p.Positions,
		Items:          make([]domain.Item, p.Items),
		CreatedAt:      time.Now().UTC(),
	}
	for i := range inst.Items {
		inst.Items[i] = domain.Item{ID: ItemLabel(i), Length: 1 + rng.Intn(p.MaxLength)}
	}
	return inst, nil
}

// ItemLabel names the i-th item in spreadsheet column order: A..Z, AA, AB, ...
func ItemLabel(i int) string {
	var buf []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}
