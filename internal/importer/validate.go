package importer

import (
	"fmt"
	"strconv"
)

var validBounds = map[string]bool{"eq": true, "le": true, "ge": true}

// ValidateInstanceSchema checks the schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateInstanceSchema(schema *InstanceSchema) []error {
	var errs []error

	if schema.TimelineLength <= 0 {
		errs = append(errs, fmt.Errorf("timeline_length must be positive"))
	}
	if len(schema.Items) == 0 {
		errs = append(errs, fmt.Errorf("items: at least one item is required"))
	}

	items := make(map[string]int)
	errs = append(errs, validateItems(schema.Items, schema.TimelineLength, items)...)
	errs = append(errs, validateSideConstraints(schema.SideConstraints, schema.TimelineLength, items)...)

	return errs
}

func validateItems(list []ItemImport, n int, items map[string]int) []error {
	var errs []error

	for i, it := range list {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if _, dup := items[it.ID]; dup {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, it.ID))
		} else {
			items[it.ID] = it.Length
		}

		if it.Length <= 0 {
			errs = append(errs, fmt.Errorf("%s.length must be positive", prefix))
		} else if n > 0 && it.Length > n {
			errs = append(errs, fmt.Errorf("%s.length %d exceeds timeline_length %d", prefix, it.Length, n))
		}
	}

	// Lengths summing past the timeline are left for the solver to report
	// as infeasible.
	return errs
}

func validateSideConstraints(list []SideConstraintImport, n int, items map[string]int) []error {
	var errs []error

	for i, sc := range list {
		prefix := fmt.Sprintf("side_constraints[%d]", i)

		switch sc.Kind {
		case KindAtOrAfter, KindAtOrBefore:
			if sc.Item == "" {
				errs = append(errs, fmt.Errorf("%s.item is required", prefix))
			} else if _, ok := items[sc.Item]; !ok {
				errs = append(errs, fmt.Errorf("%s.item: id %q not found in items", prefix, sc.Item))
			}
			if sc.Ordinal < 1 || (n > 0 && sc.Ordinal > n) {
				errs = append(errs, fmt.Errorf("%s.ordinal %d out of range 1..%d", prefix, sc.Ordinal, n))
			}
			if len(sc.Cells) > 0 || sc.Bound != "" || sc.Value != nil {
				errs = append(errs, fmt.Errorf("%s: %s takes only item and ordinal", prefix, sc.Kind))
			}
		case KindCells:
			if len(sc.Cells) == 0 {
				errs = append(errs, fmt.Errorf("%s.cells: at least one cell is required", prefix))
			}
			for j, c := range sc.Cells {
				errs = append(errs, validateCell(fmt.Sprintf("%s.cells[%d]", prefix, j), c, n, items)...)
			}
			if !validBounds[sc.Bound] {
				errs = append(errs, fmt.Errorf("%s.bound: invalid value %q (expected eq, le or ge)", prefix, sc.Bound))
			}
			if sc.Value == nil {
				errs = append(errs, fmt.Errorf("%s.value is required", prefix))
			} else if *sc.Value < 0 {
				errs = append(errs, fmt.Errorf("%s.value must not be negative", prefix))
			}
		case "":
			errs = append(errs, fmt.Errorf("%s.kind is required", prefix))
		default:
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", prefix, sc.Kind))
		}
	}

	return errs
}

func validateCell(prefix string, c CellImport, n int, items map[string]int) []error {
	var errs []error
	if _, ok := items[c.Item]; !ok {
		errs = append(errs, fmt.Errorf("%s.item: id %q not found in items", prefix, c.Item))
	}
	p, err := strconv.Atoi(c.Position)
	if err != nil || p < 1 || (n > 0 && p > n) {
		errs = append(errs, fmt.Errorf("%s.position: %q is not a position of the timeline", prefix, c.Position))
	}
	return errs
}
