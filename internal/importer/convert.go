package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/blockplan/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated InstanceSchema into a domain instance ready
// for persistence. Call ValidateInstanceSchema first; Convert assumes the
// schema is valid.
func Convert(schema *InstanceSchema) (*domain.Instance, error) {
	inst := &domain.Instance{
		ID:             uuid.New().String(),
		Name:           schema.Name,
		TimelineLength: schema.TimelineLength,
		CreatedAt:      time.Now().UTC(),
	}
	if inst.Name == "" {
		inst.Name = fmt.Sprintf("%d items on %d positions", len(schema.Items), schema.TimelineLength)
	}

	for _, it := range schema.Items {
		inst.Items = append(inst.Items, domain.Item{ID: it.ID, Length: it.Length})
	}

	positions := inst.Positions()
	for i, sc := range schema.SideConstraints {
		var out domain.SideConstraint
		switch sc.Kind {
		case KindAtOrAfter, KindAtOrBefore:
			item, ok := inst.Item(sc.Item)
			if !ok {
				return nil, fmt.Errorf("side_constraints[%d]: %w", i, domain.NewUnknownReferenceError("item", sc.Item))
			}
			if sc.Kind == KindAtOrAfter {
				out = domain.AtOrAfter(item, positions, sc.Ordinal)
			} else {
				out = domain.AtOrBefore(item, positions, sc.Ordinal)
			}
		case KindCells:
			out.Bound = domain.Bound(sc.Bound)
			if sc.Value != nil {
				out.Value = *sc.Value
			}
			for _, c := range sc.Cells {
				out.Cells = append(out.Cells, domain.CellRef{ItemID: c.Item, PositionID: c.Position})
			}
		default:
			return nil, fmt.Errorf("side_constraints[%d]: unknown kind %q", i, sc.Kind)
		}
		if sc.Name != "" {
			out.Name = sc.Name
		}
		inst.SideConstraints = append(inst.SideConstraints, out)
	}

	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// FromInstance renders inst back into file form. Side constraints are
// written as explicit cell lists.
func FromInstance(inst *domain.Instance) *InstanceSchema {
	schema := &InstanceSchema{
		Name:           inst.Name,
		TimelineLength: inst.TimelineLength,
	}
	for _, it := range inst.Items {
		schema.Items = append(schema.Items, ItemImport{ID: it.ID, Length: it.Length})
	}
	for _, sc := range inst.SideConstraints {
		value := sc.Value
		out := SideConstraintImport{
			Name:  sc.Name,
			Kind:  KindCells,
			Bound: string(sc.Bound),
			Value: &value,
		}
		for _, c := range sc.Cells {
			out.Cells = append(out.Cells, CellImport{Item: c.ItemID, Position: c.PositionID})
		}
		schema.SideConstraints = append(schema.SideConstraints, out)
	}
	return schema
}
