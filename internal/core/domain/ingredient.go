package domain

// Ingredient is a pantry item. Name is unique among live ingredients.
type Ingredient struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	ShelfLife         int    `json:"shelf_life"`
	UnitOfMeasurement string `json:"unit_of_measurement"`
	Audit
}
