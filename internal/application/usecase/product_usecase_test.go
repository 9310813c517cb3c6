package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/stockmaster-pro/internal/application/dto"
	"github.com/stockmaster/stockmaster-pro/internal/application/usecase"
	"github.com/stockmaster/stockmaster-pro/internal/domain"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

type fakeProductRepo struct {
	bySKU map[string]*entity.Product
	rows  []repository.ProductWithStock
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{bySKU: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.bySKU[p.SKU] = p
	return nil
}

func (f *fakeProductRepo) GetByID(string) (*entity.Product, error) { return nil, nil }

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	return f.bySKU[sku], nil
}

func (f *fakeProductRepo) ListWithStock(filter repository.ProductFilter) ([]repository.ProductWithStock, error) {
	if !filter.LowStockOnly {
		return f.rows, nil
	}
	var out []repository.ProductWithStock
	for _, row := range f.rows {
		if row.IsLowStock {
			out = append(out, row)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	byID map[string]*entity.Category
}

func (f *fakeCategoryRepo) Create(c *entity.Category) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return f.byID[id], nil
}

func (f *fakeCategoryRepo) List() ([]*entity.Category, error) { return nil, nil }

func newProductUC(products *fakeProductRepo) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(products, &fakeCategoryRepo{byID: map[string]*entity.Category{}})
}

func TestProductCreate_SKUDuplicadoRechazado(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUC(repo)

	_, err := uc.Create(dto.CreateProductRequest{Name: "Tornillo", SKU: "SKU-001", UnitOfMeasure: "pcs"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{Name: "Otro tornillo", SKU: "SKU-001", UnitOfMeasure: "pcs"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "Dos productos no pueden compartir SKU")
}

func TestProductCreate_MinStockNegativoRechazado(t *testing.T) {
	uc := newProductUC(newFakeProductRepo())

	_, err := uc.Create(dto.CreateProductRequest{
		Name: "Tornillo", SKU: "SKU-001", UnitOfMeasure: "pcs",
		MinStockLevel: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_CategoriaInexistenteRechazada(t *testing.T) {
	uc := newProductUC(newFakeProductRepo())

	_, err := uc.Create(dto.CreateProductRequest{
		Name: "Tornillo", SKU: "SKU-001", UnitOfMeasure: "pcs",
		CategoryID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El repositorio entrega los productos más recientes primero (created_at DESC);
// el caso de uso debe respetar ese orden sin reordenar.
func TestProductList_ConservaOrdenMasRecientePrimero(t *testing.T) {
	repo := newFakeProductRepo()
	repo.rows = []repository.ProductWithStock{
		{Product: entity.Product{ID: "p3", SKU: "SKU-003", CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}},
		{Product: entity.Product{ID: "p2", SKU: "SKU-002", CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}},
		{Product: entity.Product{ID: "p1", SKU: "SKU-001", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}},
	}
	uc := newProductUC(repo)

	out, err := uc.List(dto.ListProductsRequest{})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"p3", "p2", "p1"},
		[]string{out[0].ID, out[1].ID, out[2].ID},
		"el listado debe conservar el orden más-reciente-primero del repositorio")
}

func TestProductList_FiltroLowStockIncluyeIgualdadExacta(t *testing.T) {
	repo := newFakeProductRepo()
	repo.rows = []repository.ProductWithStock{
		{
			Product:    entity.Product{ID: "p1", SKU: "SKU-001", MinStockLevel: decimal.NewFromInt(10)},
			TotalStock: decimal.NewFromInt(10),
			IsLowStock: true, // total == mínimo cuenta como stock bajo
		},
		{
			Product:    entity.Product{ID: "p2", SKU: "SKU-002", MinStockLevel: decimal.NewFromInt(10)},
			TotalStock: decimal.NewFromInt(11),
			IsLowStock: false,
		},
	}
	uc := newProductUC(repo)

	out, err := uc.List(dto.ListProductsRequest{LowStock: true})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "p1", out[0].ID)
	assert.True(t, out[0].IsLowStock)
}
