package entity

import "time"

// Category representa una categoría de productos. Name es único global.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
