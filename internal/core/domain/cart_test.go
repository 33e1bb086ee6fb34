package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testProducts = []Product{
	{ID: "wood-1", Title: "Walnut Cutting Board", Price: 89, Category: "wood"},
	{ID: "metal-1", Title: "Steel Keyring", Price: 49, Category: "metal"},
	{ID: "acrylic-1", Title: "Acrylic Plaque", Price: 19.99, Category: "acrylic"},
}

func TestCart_AddSameProductTwice(t *testing.T) {
	c := Cart{}.Add("wood-1").Add("wood-1")

	want := []CartLine{{ProductID: "wood-1", Quantity: 2}}
	if diff := cmp.Diff(want, c.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestCart_AddKeepsInsertionOrder(t *testing.T) {
	c := Cart{}.Add("metal-1").Add("wood-1").Add("metal-1")

	want := []CartLine{
		{ProductID: "metal-1", Quantity: 2},
		{ProductID: "wood-1", Quantity: 1},
	}
	if diff := cmp.Diff(want, c.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestCart_OperationsDoNotMutateReceiver(t *testing.T) {
	base := Cart{}.Add("wood-1")
	_ = base.Add("wood-1")
	_ = base.Add("metal-1")
	_ = base.Remove("wood-1")

	want := []CartLine{{ProductID: "wood-1", Quantity: 1}}
	if diff := cmp.Diff(want, base.Lines()); diff != "" {
		t.Fatalf("receiver mutated (-want +got):\n%s", diff)
	}
}

func TestCart_RemoveUnknownIsNoop(t *testing.T) {
	c := Cart{}.Add("wood-1")
	got := c.Remove("does-not-exist")

	if diff := cmp.Diff(c.Lines(), got.Lines()); diff != "" {
		t.Fatalf("cart changed (-want +got):\n%s", diff)
	}
}

func TestCart_RemoveDeletesWholeLine(t *testing.T) {
	c := Cart{}.Add("wood-1").Add("wood-1").Add("metal-1").Remove("wood-1")

	want := []CartLine{{ProductID: "metal-1", Quantity: 1}}
	if diff := cmp.Diff(want, c.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestCart_TotalExample(t *testing.T) {
	c := NewCart(CartLine{ProductID: "wood-1", Quantity: 2})
	if got := c.Total(testProducts); got != 178 {
		t.Fatalf("expected 178, got %v", got)
	}

	c = c.Add("metal-1")
	if got := c.Total(testProducts); got != 227 {
		t.Fatalf("expected 227, got %v", got)
	}

	c = c.Remove("wood-1")
	if got := c.Total(testProducts); got != 49 {
		t.Fatalf("expected 49, got %v", got)
	}
}

func TestCart_TotalIgnoresDanglingLines(t *testing.T) {
	c := NewCart(
		CartLine{ProductID: "wood-1", Quantity: 1},
		CartLine{ProductID: "gone", Quantity: 5},
	)
	if got := c.Total(testProducts); got != 89 {
		t.Fatalf("expected 89, got %v", got)
	}
	if c.Len() != 2 {
		t.Fatalf("dangling line must be kept, got %d lines", c.Len())
	}
}

func TestCart_TotalUsesCurrentPrices(t *testing.T) {
	c := NewCart(CartLine{ProductID: "wood-1", Quantity: 2})

	repriced := []Product{{ID: "wood-1", Price: 100}}
	if got := c.Total(repriced); got != 200 {
		t.Fatalf("expected 200 after reprice, got %v", got)
	}
}

func TestCart_TotalRoundsToCents(t *testing.T) {
	c := NewCart(CartLine{ProductID: "acrylic-1", Quantity: 3})
	if got := c.Total(testProducts); got != 59.97 {
		t.Fatalf("expected 59.97, got %v", got)
	}
}

func TestCart_MergeSkipsInvalidLines(t *testing.T) {
	c := Cart{}.Add("wood-1").Merge([]CartLine{
		{ProductID: "wood-1", Quantity: 3},
		{ProductID: "metal-1", Quantity: 0},
		{ProductID: "", Quantity: 2},
		{ProductID: "acrylic-1", Quantity: -1},
		{ProductID: "metal-1", Quantity: 1},
	})

	want := []CartLine{
		{ProductID: "wood-1", Quantity: 4},
		{ProductID: "metal-1", Quantity: 1},
	}
	if diff := cmp.Diff(want, c.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if c.ItemCount() != 5 {
		t.Fatalf("expected 5 items, got %d", c.ItemCount())
	}
}

func TestCart_ZeroValueAndClear(t *testing.T) {
	var c Cart
	if !c.IsEmpty() || c.Total(testProducts) != 0 {
		t.Fatalf("zero cart should be empty with total 0")
	}
	if !c.Add("wood-1").Clear().IsEmpty() {
		t.Fatalf("Clear should empty the cart")
	}
}

func TestCart_QuantityNeverOverflows(t *testing.T) {
	huge := NewCart(CartLine{ProductID: "wood-1", Quantity: math.MaxInt})
	if !huge.IsEmpty() {
		t.Fatalf("line above the cap must be dropped, got %+v", huge.Lines())
	}

	c := NewCart(CartLine{ProductID: "wood-1", Quantity: MaxQuantity}).
		Merge([]CartLine{{ProductID: "wood-1", Quantity: 1}}).
		Add("wood-1")

	want := []CartLine{{ProductID: "wood-1", Quantity: MaxQuantity}}
	if diff := cmp.Diff(want, c.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if c.ItemCount() != MaxQuantity || c.Total(testProducts) != 89*MaxQuantity {
		t.Fatalf("unexpected count %d / total %v", c.ItemCount(), c.Total(testProducts))
	}
}

func TestCart_CheckMerge(t *testing.T) {
	c := NewCart(CartLine{ProductID: "wood-1", Quantity: MaxQuantity - 1})

	tests := []struct {
		name    string
		lines   []CartLine
		wantErr bool
	}{
		{"fills to the cap", []CartLine{{ProductID: "wood-1", Quantity: 1}}, false},
		{"new line", []CartLine{{ProductID: "metal-1", Quantity: MaxQuantity}}, false},
		{"over the cap", []CartLine{{ProductID: "wood-1", Quantity: 2}}, true},
		{"split over the cap", []CartLine{{ProductID: "wood-1", Quantity: 1}, {ProductID: "wood-1", Quantity: 1}}, true},
		{"max int", []CartLine{{ProductID: "metal-1", Quantity: math.MaxInt}}, true},
		{"zero", []CartLine{{ProductID: "metal-1", Quantity: 0}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.CheckMerge(tt.lines)
			if tt.wantErr && !errors.Is(err, ErrInvalidQuantity) {
				t.Fatalf("expected ErrInvalidQuantity, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
