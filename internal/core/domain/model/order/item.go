package order

// UnnamedItemLabel is the sentinel name assigned to line items submitted
// without a name. Consolidation groups all such items under this label.
const UnnamedItemLabel = "Unnamed item"

// LineItem is a named product entry on an order. Name is the case-sensitive
// identity key used by consolidation; the line total is derived, never stored.
//
// The exported fields carry the wire representation; Consolidate is the only
// path by which items enter an Order, and it normalizes every field, so items
// held by an aggregate always satisfy the invariants (non-empty name,
// quantity >= 1, unit price >= 0).
type LineItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// LineTotal returns the derived price of the line: unit price times quantity.
func (i LineItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// normalize applies the submission defaults to a raw entry: an empty name
// becomes the sentinel label, a missing (zero) quantity defaults to 1, and a
// negative unit price clamps to 0.
func (i LineItem) normalize() LineItem {
	if i.Name == "" {
		i.Name = UnnamedItemLabel
	}
	if i.Quantity == 0 {
		i.Quantity = 1
	}
	if i.UnitPrice < 0 {
		i.UnitPrice = 0
	}
	return i
}

// Consolidate merges raw line items by exact name, summing quantities.
// The first occurrence of a name determines both its position in the output
// sequence and its unit price. Entries whose summed quantity ends below 1 are
// dropped, so every returned item has quantity >= 1.
//
// Consolidate is deterministic and idempotent: consolidating an already
// consolidated sequence yields the same sequence.
func Consolidate(raw []LineItem) []LineItem {
	merged := make([]LineItem, 0, len(raw))
	index := make(map[string]int, len(raw))

	for _, entry := range raw {
		item := entry.normalize()
		if pos, ok := index[item.Name]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.Name] = len(merged)
		merged = append(merged, item)
	}

	out := merged[:0]
	for _, item := range merged {
		if item.Quantity >= 1 {
			out = append(out, item)
		}
	}
	return out
}

// TotalPrice sums the line totals of the given items. This is the only way a
// total price is ever computed; client-supplied totals are never used.
func TotalPrice(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
