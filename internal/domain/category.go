package domain

import (
	"strings"
	"time"
)

// Category groups products. Products reference their category by id and
// are queried through the product repository; the category never owns a
// live product collection.
type Category struct {
	id          int64
	name        string
	description string
	isActive    bool
	createdAt   time.Time
	updatedAt   *time.Time
}

// NewCategory creates an active category. Name uniqueness is checked by
// the service against the repository.
func NewCategory(name, description string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("category name cannot be empty")
	}
	return &Category{
		name:        name,
		description: description,
		isActive:    true,
		createdAt:   time.Now().UTC(),
	}, nil
}

// RehydrateCategory restores a category from storage.
func RehydrateCategory(id int64, name, description string, isActive bool, createdAt time.Time, updatedAt *time.Time) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// AssignID records the identity generated by storage.
func (c *Category) AssignID(id int64) { c.id = id }

func (c *Category) ID() int64             { return c.id }
func (c *Category) Name() string          { return c.name }
func (c *Category) Description() string   { return c.description }
func (c *Category) IsActive() bool        { return c.isActive }
func (c *Category) CreatedAt() time.Time  { return c.createdAt }
func (c *Category) UpdatedAt() *time.Time { return c.updatedAt }

// UpdateInfo replaces the descriptive fields. A blank name leaves the
// current name unchanged.
func (c *Category) UpdateInfo(name, description string) {
	if strings.TrimSpace(name) != "" {
		c.name = name
	}
	c.description = description
	c.touch()
}

// Activate marks the category active.
func (c *Category) Activate() {
	c.isActive = true
	c.touch()
}

// Deactivate marks the category inactive.
func (c *Category) Deactivate() {
	c.isActive = false
	c.touch()
}

func (c *Category) touch() {
	now := time.Now().UTC()
	c.updatedAt = &now
}
