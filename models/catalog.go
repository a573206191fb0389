package models

import "time"

// Category groups orderable items under a unique, case-insensitively
// compared name.
type Category struct {
	CategoryID string `json:"categoryID"`

	// Name is unique across categories, compared case-insensitively.
	Name string `json:"name"`

	// Items holds the category's items when the read path populates them;
	// write paths leave it nil.
	Items []Item `json:"items,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Category model.
func (c Category) TableName() string {
	return "categories"
}

// Item is a single orderable unit belonging to exactly one category.
type Item struct {
	ItemID string `json:"itemID"`

	// Name is unique across all items, compared case-insensitively.
	Name string `json:"name"`

	// Image is a URL to the item's picture. Required and validated on create.
	Image string `json:"image"`

	// Stock is the non-negative number of units available.
	Stock int `json:"stock"`

	// CategoryID references the owning category.
	CategoryID string `json:"categoryID"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Item model.
func (i Item) TableName() string {
	return "items"
}

// ItemUpdate describes a partial item edit. Nil fields are left untouched.
// The closed field set replaces the original free-form path-based edits.
type ItemUpdate struct {
	Name  *string
	Image *string
	Stock *int
}

// ResolvedItem is an item with its owning category populated, used on
// order and claim read paths.
type ResolvedItem struct {
	Item
	Category Category `json:"category"`
}
