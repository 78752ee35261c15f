package models

import "fmt"

// Category is the closed set of project categories the dashboard can store.
type Category string

const (
	CategoryWeb       Category = "web"
	CategoryMobile    Category = "mobile"
	CategoryFullstack Category = "fullstack"
)

// CategoryAll is a filter sentinel accepted by list endpoints. It is never stored.
const CategoryAll = "all"

// Categories lists every storable category.
func Categories() []Category {
	return []Category{CategoryWeb, CategoryMobile, CategoryFullstack}
}

// ParseCategory converts a stored or submitted string into a Category,
// rejecting anything outside the closed set.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryWeb, CategoryMobile, CategoryFullstack:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func (c Category) String() string {
	return string(c)
}
