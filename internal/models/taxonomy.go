package models

// Category classifies posts, events and businesses.
type Category struct {
	ID   string `json:"id" db:"id"`
	Slug string `json:"slug" db:"slug"`
	Name string `json:"name" db:"name"`
}

// Area is a broad region of the city containing neighborhoods.
type Area struct {
	ID          string `json:"id" db:"id"`
	Slug        string `json:"slug" db:"slug"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
}

// Neighborhood belongs to exactly one area.
type Neighborhood struct {
	ID          string `json:"id" db:"id"`
	Slug        string `json:"slug" db:"slug"`
	Name        string `json:"name" db:"name"`
	AreaID      string `json:"area_id" db:"area_id"`
	AreaSlug    string `json:"area_slug,omitempty" db:"-"`
	Description string `json:"description,omitempty" db:"description"`
}
