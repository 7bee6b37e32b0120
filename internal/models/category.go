package models

import "fmt"

// Category is the closed set of expense categories.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryGroceries     Category = "groceries"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"
	CategoryShopping      Category = "shopping"
	CategoryHealth        Category = "health"
	CategoryOther         Category = "other"
	// CategoryAuto marks expenses whose category was filled in by an importer.
	CategoryAuto Category = "auto"
)

var categories = map[Category]bool{
	CategoryFood:          true,
	CategoryGroceries:     true,
	CategoryTransport:     true,
	CategoryAccommodation: true,
	CategoryEntertainment: true,
	CategoryUtilities:     true,
	CategoryShopping:      true,
	CategoryHealth:        true,
	CategoryOther:         true,
	CategoryAuto:          true,
}

// ParseCategory validates a wire value against the known categories.
func ParseCategory(v string) (Category, error) {
	c := Category(v)
	if !categories[c] {
		return "", fmt.Errorf("unknown category %q", v)
	}
	return c, nil
}
