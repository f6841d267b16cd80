package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"retailx-assistant/pkg/models"
)

// ErrInvalidPrice is returned when a price string has no numeric remainder
// after stripping currency symbols and thousand separators.
var ErrInvalidPrice = errors.New("invalid price")

// Tables holds the four retail tables, loaded once at startup and treated as
// immutable afterwards. All lookups are read-only projections and are safe
// for concurrent use.
type Tables struct {
	Customers []models.Customer
	Orders    []models.Order
	Products  []models.Product
	Stores    []models.Store
}

// FindProductByName returns the first product whose name contains the given
// substring (case-insensitive), or nil when nothing matches.
func (t *Tables) FindProductByName(name string) *models.Product {
	sub := strings.ToLower(name)
	for i := range t.Products {
		if strings.Contains(strings.ToLower(t.Products[i].ProductName), sub) {
			return &t.Products[i]
		}
	}
	return nil
}

// FindOrderByProductID returns the first order row with the exact ProductID,
// or nil when nothing matches. ProductID is not unique in the orders table;
// only the first row is surfaced, so later orders for the same product are
// not visible through this lookup.
func (t *Tables) FindOrderByProductID(productID int) *models.Order {
	for i := range t.Orders {
		if t.Orders[i].ProductID == productID {
			return &t.Orders[i]
		}
	}
	return nil
}

// FindStoreByCity returns the first store whose city contains the given
// substring (case-insensitive), or nil when nothing matches.
func (t *Tables) FindStoreByCity(city string) *models.Store {
	sub := strings.ToLower(city)
	for i := range t.Stores {
		if strings.Contains(strings.ToLower(t.Stores[i].City), sub) {
			return &t.Stores[i]
		}
	}
	return nil
}

// FilterProductsByCategory returns all products whose category contains the
// given substring (case-insensitive), preserving table order.
func (t *Tables) FilterProductsByCategory(category string) []models.Product {
	sub := strings.ToLower(category)
	var out []models.Product
	for _, p := range t.Products {
		if strings.Contains(strings.ToLower(p.Category), sub) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct product categories in first-seen order.
func (t *Tables) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range t.Products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// NormalizePrice reduces a raw price string to a non-negative float.
// Only the known decorations are stripped: currency symbols (₹, $, the
// mojibake '?'), spaces and thousand separators. Anything else left over
// fails parsing, so "500rs" is a validation error and not 500.
func NormalizePrice(raw string) (float64, error) {
	cleaned := stripPriceDecorations(raw)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative value %q", ErrInvalidPrice, raw)
	}
	return v, nil
}

// stripPriceDecorations removes currency symbols, whitespace and commas
func stripPriceDecorations(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '₹' || r == '$' || r == '?' || r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
