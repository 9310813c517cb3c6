package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stockmaster/stockmaster-pro/internal/application/dto"
	"github.com/stockmaster/stockmaster-pro/internal/domain"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos. El stock nunca se
// edita aquí: solo se mueve vía documentos de movimiento.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un producto. SKU es único global; min_stock_level no puede ser negativo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.MinStockLevel.IsNegative() {
		return nil, fmt.Errorf("%w: min_stock_level no puede ser negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: sku %s", domain.ErrDuplicate, in.SKU)
	}
	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, in.CategoryID)
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		UnitOfMeasure: in.UnitOfMeasure,
		MinStockLevel: in.MinStockLevel,
		CategoryID:    in.CategoryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return &dto.ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		SKU:           product.SKU,
		UnitOfMeasure: product.UnitOfMeasure,
		MinStockLevel: product.MinStockLevel,
		CategoryID:    product.CategoryID,
		Description:   product.Description,
		CreatedAt:     product.CreatedAt,
	}, nil
}

// List lista productos con su agregado de stock, aplicando los filtros de
// categoría, búsqueda por nombre/sku y solo-stock-bajo.
func (uc *ProductUseCase) List(in dto.ListProductsRequest) ([]dto.ProductResponse, error) {
	rows, err := uc.repo.ListWithStock(repository.ProductFilter{
		CategoryName: in.Category,
		Search:       in.Search,
		LowStockOnly: in.LowStock,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ProductResponse{
			ID:            row.Product.ID,
			Name:          row.Product.Name,
			SKU:           row.Product.SKU,
			UnitOfMeasure: row.Product.UnitOfMeasure,
			MinStockLevel: row.Product.MinStockLevel,
			CategoryID:    row.Product.CategoryID,
			CategoryName:  row.CategoryName,
			Description:   row.Product.Description,
			TotalStock:    row.TotalStock,
			ReservedStock: row.ReservedStock,
			IsLowStock:    row.IsLowStock,
			CreatedAt:     row.Product.CreatedAt,
		})
	}
	return out, nil
}
