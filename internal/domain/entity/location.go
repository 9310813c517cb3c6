package entity

import "time"

// LocationTypeWarehouse es el tipo por defecto de una ubicación.
const LocationTypeWarehouse = "warehouse"

// Location representa una bodega, zona o muelle donde se almacena inventario.
type Location struct {
	ID        string
	Name      string
	Type      string // warehouse, zone, dock...
	Address   string
	CreatedAt time.Time
}
