package domain

import "strings"

// View is a top-level storefront view.
type View string

const (
	ViewHome       View = "home"
	ViewCategories View = "categories"
	ViewProducts   View = "products"
	ViewPortfolio  View = "portfolio"
	ViewClients    View = "clients"
	ViewAccount    View = "account"
	ViewContact    View = "contact"
)

// DefaultView is the view a new visitor starts on.
const DefaultView = ViewProducts

// Slice names an independently fetched part of the remote catalog.
type Slice string

const (
	SliceCategories Slice = "categories"
	SliceProducts   Slice = "products"
	SlicePortfolio  Slice = "portfolio"
)

// viewSlices lists what each data-bearing view fetches on entry.
var viewSlices = map[View][]Slice{
	ViewCategories: {SliceCategories},
	ViewProducts:   {SliceCategories, SliceProducts},
	ViewPortfolio:  {SlicePortfolio},
	ViewClients:    {SlicePortfolio},
}

// ParseView maps a string to a known view.
func ParseView(s string) (View, bool) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case ViewHome, ViewCategories, ViewProducts, ViewPortfolio, ViewClients, ViewAccount, ViewContact:
		return v, true
	}
	return "", false
}

// Slices returns the slices fetched when entering v. Views without data
// return nil.
func (v View) Slices() []Slice {
	return viewSlices[v]
}

// FilterDomain selects which active category filter is addressed.
type FilterDomain string

const (
	FilterProducts  FilterDomain = "products"
	FilterPortfolio FilterDomain = "portfolio"
)

// ParseFilterDomain maps a string to a filter domain.
func ParseFilterDomain(s string) (FilterDomain, bool) {
	switch d := FilterDomain(strings.ToLower(strings.TrimSpace(s))); d {
	case FilterProducts, FilterPortfolio:
		return d, true
	}
	return "", false
}

// AllCategories is the explicit "no filter" selection.
const AllCategories = "all"
