package models

import "strings"

// Category values are a fixed, wire-level contract shared with the frontend.
const (
	CategoryBreakfast     = "Breakfast"
	CategoryDessert       = "Dessert"
	CategoryDinner        = "Dinner"
	CategoryLunch         = "Lunch"
	CategorySalads        = "Salads"
	CategorySoup          = "Soup"
	CategorySnacks        = "Snacks"
	CategoryUncategorized = "Uncategorized"
)

// Categories lists every valid recipe category, in display order.
var Categories = []string{
	CategoryBreakfast,
	CategoryDessert,
	CategoryDinner,
	CategoryLunch,
	CategorySalads,
	CategorySoup,
	CategorySnacks,
	CategoryUncategorized,
}

// IsValidCategory reports whether category is a member of the fixed set.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// CategoryList returns the valid categories as a comma-separated string for
// error messages.
func CategoryList() string {
	return strings.Join(Categories, ", ")
}
