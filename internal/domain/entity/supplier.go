package entity

import "time"

// Supplier representa un proveedor de mercancía (recepciones).
type Supplier struct {
	ID           string
	Name         string
	ContactEmail string
	ContactPhone string
	Address      string
	CreatedAt    time.Time
}
