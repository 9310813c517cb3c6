package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stockmaster/stockmaster-pro/internal/application/dto"
	"github.com/stockmaster/stockmaster-pro/internal/domain"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

var zero = decimal.Zero

// lineRef referencias de una línea a validar contra el catálogo.
type lineRef struct {
	Index      int
	ProductID  string
	LocationID string // vacío si la variante no lleva ubicación por línea
}

// validateLineRefs verifica que los productos y ubicaciones referenciados por
// las líneas existan. Cachea las consultas: los documentos suelen repetir
// producto o ubicación entre líneas.
func validateLineRefs(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	refs []lineRef,
) error {
	products := map[string]bool{}
	locations := map[string]bool{}
	for _, ref := range refs {
		if ref.ProductID != "" {
			if _, seen := products[ref.ProductID]; !seen {
				p, err := productRepo.GetByID(ref.ProductID)
				if err != nil {
					return err
				}
				products[ref.ProductID] = p != nil
			}
			if !products[ref.ProductID] {
				return fmt.Errorf("%w: items[%d]: producto %s", domain.ErrNotFound, ref.Index, ref.ProductID)
			}
		}
		if ref.LocationID != "" {
			if _, seen := locations[ref.LocationID]; !seen {
				l, err := locationRepo.GetByID(ref.LocationID)
				if err != nil {
					return err
				}
				locations[ref.LocationID] = l != nil
			}
			if !locations[ref.LocationID] {
				return fmt.Errorf("%w: items[%d]: ubicación %s", domain.ErrNotFound, ref.Index, ref.LocationID)
			}
		}
	}
	return nil
}

// validateLocation verifica que una ubicación de cabecera exista.
func validateLocation(locationRepo repository.LocationRepository, id, field string) error {
	if id == "" {
		return fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, field)
	}
	loc, err := locationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if loc == nil {
		return fmt.Errorf("%w: ubicación %s (%s)", domain.ErrNotFound, id, field)
	}
	return nil
}

func toListResponse(rows []repository.DocumentListItem) []dto.DocumentListItemResponse {
	out := make([]dto.DocumentListItemResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.DocumentListItemResponse{
			ID:           row.ID,
			Number:       row.Number,
			Status:       row.Status,
			TotalItems:   row.TotalItems,
			ItemCount:    row.ItemCount,
			Notes:        row.Notes,
			CreatedBy:    row.CreatedBy,
			CreatedAt:    row.CreatedAt,
			SupplierName: row.SupplierName,
			CustomerName: row.CustomerName,
			LocationName: row.LocationName,
			FromLocation: row.FromLocation,
			ToLocation:   row.ToLocation,
			Reason:       row.Reason,
		})
	}
	return out
}
