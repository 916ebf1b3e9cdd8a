package packer

// DefaultScanWindow is how many oversized items may be skipped before packing gives up.
const DefaultScanWindow = 8

// Slot is one item placed into a packed context.
type Slot[T any] struct {
	// Slot is the 1-based position in the packed context.
	Slot int
	// Rank is the 1-based position of the item in the input order.
	Rank   int
	Item   T
	Tokens int
}

// Packed is the outcome of a packing pass.
type Packed[T any] struct {
	Slots      []Slot[T]
	TokensUsed int
	Skipped    int
}

// Pack greedily selects items, in input order, into a token budget.
//
// An item that does not fit is skipped and scanning continues with the next one,
// so a single oversized top result does not waste the budget. Packing stops once
// the budget is used up or scanWindow items have been skipped. The sum of the
// selected items' tokens never exceeds budget. Negative estimates count as zero.
func Pack[T any](items []T, tokens func(T) int, budget, scanWindow int) Packed[T] {
	var out Packed[T]
	if budget <= 0 || len(items) == 0 {
		return out
	}
	if scanWindow <= 0 {
		scanWindow = DefaultScanWindow
	}

	remaining := budget
	for i, item := range items {
		if remaining == 0 || out.Skipped >= scanWindow {
			break
		}
		cost := max(tokens(item), 0)
		if cost > remaining {
			out.Skipped++
			continue
		}
		remaining -= cost
		out.Slots = append(out.Slots, Slot[T]{
			Slot:   len(out.Slots) + 1,
			Rank:   i + 1,
			Item:   item,
			Tokens: cost,
		})
	}
	out.TokensUsed = budget - remaining
	return out
}
