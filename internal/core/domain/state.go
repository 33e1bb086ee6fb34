package domain

// RemoteCatalog holds the last applied response for each slice. A nil slice
// means nothing usable arrived, which resolves to fallback content.
type RemoteCatalog struct {
	Categories []Category
	Products   []Product
	Portfolio  []PortfolioItem
}

// AppState is everything one visitor's storefront owns. It is passed through
// and returned by the state transition functions in the service package.
type AppState struct {
	View            View
	Generation      uint64
	ProductFilter   string
	PortfolioFilter string
	Remote          RemoteCatalog
	Cart            Cart
	Session         Session
	// Trigger is bumped on view, filter and cart size changes; overlays use it.
	Trigger uint64
}

// NewAppState returns the initial state for a new visitor.
func NewAppState() AppState {
	return AppState{View: DefaultView}
}

// ActiveFilter returns the filter for the given domain.
func (s AppState) ActiveFilter(d FilterDomain) string {
	if d == FilterPortfolio {
		return s.PortfolioFilter
	}
	return s.ProductFilter
}

// FetchRequest is a tagged fetch issued on view entry.
type FetchRequest struct {
	VisitorID  string
	Slice      Slice
	Generation uint64
}

// FetchResult carries the outcome of a FetchRequest. Err is set when the
// fetch failed; the collections are then empty.
type FetchResult struct {
	FetchRequest
	Categories []Category
	Products   []Product
	Portfolio  []PortfolioItem
	Err        error
}

// WithView moves to v, bumping Trigger when the view changes.
func (s AppState) WithView(v View) AppState {
	if s.View != v {
		s.Trigger++
	}
	s.View = v
	return s
}

// WithFilter sets the active category of d. "all" and "" both clear it.
func (s AppState) WithFilter(d FilterDomain, key string) AppState {
	if key == AllCategories {
		key = ""
	}
	if s.ActiveFilter(d) != key {
		s.Trigger++
	}
	if d == FilterPortfolio {
		s.PortfolioFilter = key
	} else {
		s.ProductFilter = key
	}
	return s
}

// WithCart replaces the cart, bumping Trigger when the number of lines changes.
func (s AppState) WithCart(c Cart) AppState {
	if c.Len() != s.Cart.Len() {
		s.Trigger++
	}
	s.Cart = c
	return s
}
