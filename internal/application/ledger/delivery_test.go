package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/stockmaster-pro/internal/application/dto"
	"github.com/stockmaster/stockmaster-pro/internal/application/ledger"
	"github.com/stockmaster/stockmaster-pro/internal/domain"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
)

func newDeliveryUC(f *fixture) *ledger.DeliveryUseCase {
	return ledger.NewDeliveryUseCase(f.tx, f.deliveries, f.products, f.locations, nil)
}

// seedStock carga stock inicial directamente en el fake.
func seedStock(f *fixture, productID, locationID string, qty int64) {
	_ = f.stock.ApplyDelta(productID, locationID, decimal.NewFromInt(qty), decimal.Zero)
}

func TestDeliverySubmit_CreaEnDraft(t *testing.T) {
	f := newFixture()
	f.addProduct("p1", "SKU-001", decimal.Zero)
	f.addLocation("loc1", "Bodega Central")
	uc := newDeliveryUC(f)

	resp, err := uc.Submit(context.Background(), "luis", dto.CreateDeliveryRequest{
		CustomerName: "Cliente Andino",
		Items: []dto.DeliveryItemRequest{
			{ProductID: "p1", LocationID: "loc1", QuantityRequested: decimal.NewFromInt(8)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "DEL-000001", resp.OrderNumber)
	assert.Equal(t, entity.DeliveryStatusDraft, resp.Status)
	assert.Equal(t, "Cliente Andino", resp.CustomerName)
	assert.Equal(t, 1, resp.TotalItems)
}

func TestDeliverySubmit_ClienteRequerido(t *testing.T) {
	f := newFixture()
	f.addProduct("p1", "SKU-001", decimal.Zero)
	f.addLocation("loc1", "Bodega Central")
	uc := newDeliveryUC(f)

	_, err := uc.Submit(context.Background(), "luis", dto.CreateDeliveryRequest{
		Items: []dto.DeliveryItemRequest{
			{ProductID: "p1", LocationID: "loc1", QuantityRequested: decimal.NewFromInt(1)},
		},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.deliveries.docs)
}

func TestDeliveryAdvanceStatus_PickingReservaStock(t *testing.T) {
	f := newFixture()
	f.addProduct("p1", "SKU-001", decimal.Zero)
	f.addLocation("loc1", "Bodega Central")
	seedStock(f, "p1", "loc1", 20)
	uc := newDeliveryUC(f)

	resp, err := uc.Submit(context.Background(), "luis", dto.CreateDeliveryRequest{
		CustomerName: "Cliente Andino",
		Items: []dto.DeliveryItemRequest{
			{ProductID: "p1", LocationID: "loc1", QuantityRequested: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)

	_, err = uc.AdvanceStatus(context.Background(), resp.ID, entity.DeliveryStatusPicking)
	require.NoError(t, err)

	lvl, _ := f.stock.Get("p1", "loc1")
	assert.True(t, decimal.NewFromInt(20).Equal(lvl.Quantity), "picking no descuenta el on-hand")
	assert.True(t, decimal.NewFromInt(8).Equal(lvl.ReservedQuantity), "picking reserva lo solicitado")
	assert.True(t, decimal.NewFromInt(12).Equal(lvl.Available()), "disponible = on-hand - reservado")
}

func TestDeliveryAdvanceStatus_PickingSinDisponibleRechazado(t *testing.T) {
	f := newFixture()
	f.addProduct("p1", "SKU-001", decimal.Zero)
	f.addLocation("loc1", "Bodega Central")
	seedStock(f, "p1", "loc1", 5)
	uc := newDeliveryUC(f)

	resp, err := uc.Submit(context.Background(), "luis", dto.CreateDeliveryRequest{
		CustomerName: "Cliente Andino",
		Items: []dto.DeliveryItemRequest{
			{ProductID: "p1", LocationID: "loc1", QuantityRequested: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)

	_, err = uc.AdvanceStatus(context.Background(), resp.ID, entity.DeliveryStatusPicking)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// la reserva no debe quedar a medias
	lvl, _ := f.stock.Get("p1", "loc1")
	assert.True(t, lvl.ReservedQuantity.IsZero())

	// el documento sigue en draft
	doc, err := uc.GetByID(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusDraft, doc.Status)
}

func TestDeliveryAdvanceStatus_ShippedDescuentaYLiberaReserva(t *testing.T) {
	f := newFixture()
	f.addProduct("p1", "SKU-001", decimal.Zero)
	f.addLocation("loc1", "Bodega Central")
	seedStock(f, "p1", "loc1", 20)
	uc := newDeliveryUC(f)

	resp, err := uc.Submit(context.Background(), "luis", dto.CreateDeliveryRequest{
		CustomerName: "Cliente Andino",
		Items: []dto.DeliveryItemRequest{
			{ProductID: "p1", LocationID: "loc1", QuantityRequested: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)

	for _, status := range []string{
		entity.DeliveryStatusPicking,
		entity.DeliveryStatusPacking,
		entity.DeliveryStatusShipped,
	} {
		resp, err = uc.AdvanceStatus(context.Background(), resp.ID, status)
		require.NoError(t, err, "transición a %s", status)
	}

	lvl, _ := f.stock.Get("p1", "loc1")
	assert.True(t, decimal.NewFromInt(12).Equal(lvl.Quantity), "shipped descuenta el on-hand")
	assert.True(t, lvl.ReservedQuantity.IsZero(), "shipped libera la reserva tomada en picking")

	// delivered es solo cambio de estado
	resp, err = uc.AdvanceStatus(context.Background(), resp.ID, entity.DeliveryStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusDelivered, resp.Status)

	lvl, _ = f.stock.Get("p1", "loc1")
	assert.True(t, decimal.NewFromInt(12).Equal(lvl.Quantity))
}

func TestDeliveryAdvanceStatus_RetrocesoRechazado(t *testing.T) {
	f := newFixture()
	f.addProduct("p1", "SKU-001", decimal.Zero)
	f.addLocation("loc1", "Bodega Central")
	seedStock(f, "p1", "loc1", 20)
	uc := newDeliveryUC(f)

	resp, err := uc.Submit(context.Background(), "luis", dto.CreateDeliveryRequest{
		CustomerName: "Cliente Andino",
		Items: []dto.DeliveryItemRequest{
			{ProductID: "p1", LocationID: "loc1", QuantityRequested: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	_, err = uc.AdvanceStatus(context.Background(), resp.ID, entity.DeliveryStatusPicking)
	require.NoError(t, err)

	_, err = uc.AdvanceStatus(context.Background(), resp.ID, entity.DeliveryStatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
