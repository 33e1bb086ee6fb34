package domain

import "math"

// MaxQuantity caps the quantity of a single cart line.
const MaxQuantity = 999

// CartLine references a product by id. Quantity is always in [1, MaxQuantity].
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"qty"`
}

// Cart is an ordered ledger of lines, unique by ProductID. The zero value is an
// empty cart. All operations return a new Cart and never mutate the receiver.
type Cart struct {
	lines []CartLine
}

// NewCart builds a cart from lines, folding duplicates and dropping lines with
// a quantity outside [1, MaxQuantity].
func NewCart(lines ...CartLine) Cart {
	return Cart{}.Merge(lines)
}

// Lines returns a copy of the cart lines in insertion order.
func (c Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len is the number of distinct lines.
func (c Cart) Len() int { return len(c.lines) }

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Add increments the line for productID, appending a new line when absent.
func (c Cart) Add(productID string) Cart {
	return c.addQuantity(productID, 1)
}

// Remove deletes the whole line for productID. Unknown ids are a no-op.
func (c Cart) Remove(productID string) Cart {
	out := make([]CartLine, 0, len(c.lines))
	for _, l := range c.lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	return Cart{lines: out}
}

// Merge folds lines into the cart. Lines with a quantity outside
// [1, MaxQuantity] are ignored. Use CheckMerge first to reject such batches.
func (c Cart) Merge(lines []CartLine) Cart {
	out := c
	for _, l := range lines {
		if l.Quantity < 1 || l.Quantity > MaxQuantity || l.ProductID == "" {
			continue
		}
		out = out.addQuantity(l.ProductID, l.Quantity)
	}
	return out
}

// CheckMerge reports ErrInvalidQuantity when merging lines would leave any
// line outside [1, MaxQuantity].
func (c Cart) CheckMerge(lines []CartLine) error {
	totals := make(map[string]int, len(c.lines)+len(lines))
	for _, l := range c.lines {
		totals[l.ProductID] = l.Quantity
	}
	for _, l := range lines {
		if l.Quantity < 1 || l.Quantity > MaxQuantity {
			return ErrInvalidQuantity
		}
		totals[l.ProductID] += l.Quantity
		if totals[l.ProductID] > MaxQuantity {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart { return Cart{} }

// ItemCount is the sum of quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total prices every line against products at call time. Lines whose product
// is no longer present contribute 0. The result is rounded to cents.
func (c Cart) Total(products []Product) float64 {
	var sum float64
	for _, l := range c.lines {
		if p, ok := FindProduct(products, l.ProductID); ok {
			sum += p.Price * float64(l.Quantity)
		}
	}
	return RoundCents(sum)
}

func (c Cart) addQuantity(productID string, qty int) Cart {
	out := make([]CartLine, len(c.lines), len(c.lines)+1)
	copy(out, c.lines)
	for i := range out {
		if out[i].ProductID == productID {
			// Saturate at the cap; both operands are <= MaxQuantity here.
			out[i].Quantity = min(out[i].Quantity+qty, MaxQuantity)
			return Cart{lines: out}
		}
	}
	return Cart{lines: append(out, CartLine{ProductID: productID, Quantity: qty})}
}

// RoundCents rounds an amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
