package pricing

import "lastmile/internal/core/domain/model/kernel"

// Table is a tenant's set of directions. Ranges may overlap.
type Table struct {
	directions []*Direction
}

func NewTable(directions []*Direction) Table {
	return Table{directions: directions}
}

func (t Table) Directions() []*Direction {
	return t.directions
}

// Resolve returns the highest surcharge among the directions covering code,
// or zero when none does.
//
// Example:
//
//	table := pricing.NewTable(directions)
//	surcharge := table.Resolve(o.PostalCode())
func (t Table) Resolve(code kernel.PostalCode) kernel.Money {
	var best kernel.Money
	for _, d := range t.directions {
		if d.Covers(code) && d.surcharge > best {
			best = d.surcharge
		}
	}
	return best
}
