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

func newAdjustmentUC(f *fixture) *ledger.AdjustmentUseCase {
	return ledger.NewAdjustmentUseCase(f.tx, f.adjustments, f.products, f.locations)
}

func TestAdjustmentSubmit_CalculaDiferenciaPorLinea(t *testing.T) {
	f := newFixture()
	f.addProduct("p1", "SKU-001", decimal.Zero)
	f.addProduct("p2", "SKU-002", decimal.Zero)
	f.addLocation("loc1", "Bodega Central")
	uc := newAdjustmentUC(f)

	resp, err := uc.Submit(context.Background(), "ana", dto.CreateAdjustmentRequest{
		LocationID: "loc1",
		Reason:     "Cycle Count",
		Items: []dto.AdjustmentItemRequest{
			{ProductID: "p1", RecordedQuantity: decimal.NewFromInt(50), CountedQuantity: decimal.NewFromInt(42)},
			{ProductID: "p2", RecordedQuantity: decimal.NewFromInt(10), CountedQuantity: decimal.NewFromInt(13)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "ADJ-000001", resp.AdjustmentNumber)
	assert.Equal(t, entity.AdjustmentStatusDraft, resp.Status)
	require.Len(t, resp.Items, 2)
	assert.True(t, decimal.NewFromInt(-8).Equal(resp.Items[0].Difference),
		"faltante: contado 42 - registrado 50 = -8")
	assert.True(t, decimal.NewFromInt(3).Equal(resp.Items[1].Difference),
		"sobrante: contado 13 - registrado 10 = 3")
}

func TestAdjustmentSubmit_MotivoFueraDelVocabulario(t *testing.T) {
	f := newFixture()
	f.addProduct("p1", "SKU-001", decimal.Zero)
	f.addLocation("loc1", "Bodega Central")
	uc := newAdjustmentUC(f)

	_, err := uc.Submit(context.Background(), "ana", dto.CreateAdjustmentRequest{
		LocationID: "loc1",
		Reason:     "Porque sí",
		Items: []dto.AdjustmentItemRequest{
			{ProductID: "p1", RecordedQuantity: decimal.NewFromInt(1), CountedQuantity: decimal.NewFromInt(2)},
		},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.adjustments.docs)
}

func TestAdjustmentSubmit_CantidadNegativaRechazada(t *testing.T) {
	f := newFixture()
	f.addProduct("p1", "SKU-001", decimal.Zero)
	f.addLocation("loc1", "Bodega Central")
	uc := newAdjustmentUC(f)

	_, err := uc.Submit(context.Background(), "ana", dto.CreateAdjustmentRequest{
		LocationID: "loc1",
		Reason:     "Damage",
		Items: []dto.AdjustmentItemRequest{
			{ProductID: "p1", RecordedQuantity: decimal.NewFromInt(-1), CountedQuantity: decimal.NewFromInt(2)},
		},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustmentAdvanceStatus_ApprovedAplicaDiferencias(t *testing.T) {
	f := newFixture()
	f.addProduct("p1", "SKU-001", decimal.Zero)
	f.addProduct("p2", "SKU-002", decimal.Zero)
	f.addLocation("loc1", "Bodega Central")
	seedStock(f, "p1", "loc1", 50)
	seedStock(f, "p2", "loc1", 10)
	uc := newAdjustmentUC(f)

	resp, err := uc.Submit(context.Background(), "ana", dto.CreateAdjustmentRequest{
		LocationID: "loc1",
		Reason:     "Physical Count",
		Items: []dto.AdjustmentItemRequest{
			{ProductID: "p1", RecordedQuantity: decimal.NewFromInt(50), CountedQuantity: decimal.NewFromInt(42)},
			{ProductID: "p2", RecordedQuantity: decimal.NewFromInt(10), CountedQuantity: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	resp, err = uc.AdvanceStatus(context.Background(), resp.ID, entity.AdjustmentStatusReview)
	require.NoError(t, err)

	// review no toca stock
	lvl, _ := f.stock.Get("p1", "loc1")
	assert.True(t, decimal.NewFromInt(50).Equal(lvl.Quantity))

	resp, err = uc.AdvanceStatus(context.Background(), resp.ID, entity.AdjustmentStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusApproved, resp.Status)

	lvl, _ = f.stock.Get("p1", "loc1")
	assert.True(t, decimal.NewFromInt(42).Equal(lvl.Quantity),
		"approved deja el stock en la cantidad contada")
	lvl2, _ := f.stock.Get("p2", "loc1")
	assert.True(t, decimal.NewFromInt(10).Equal(lvl2.Quantity),
		"diferencia cero no genera movimiento")
}

func TestAdjustmentAdvanceStatus_SaltoDraftAprovedRechazado(t *testing.T) {
	f := newFixture()
	f.addProduct("p1", "SKU-001", decimal.Zero)
	f.addLocation("loc1", "Bodega Central")
	seedStock(f, "p1", "loc1", 50)
	uc := newAdjustmentUC(f)

	resp, err := uc.Submit(context.Background(), "ana", dto.CreateAdjustmentRequest{
		LocationID: "loc1",
		Reason:     "Theft",
		Items: []dto.AdjustmentItemRequest{
			{ProductID: "p1", RecordedQuantity: decimal.NewFromInt(50), CountedQuantity: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)

	_, err = uc.AdvanceStatus(context.Background(), resp.ID, entity.AdjustmentStatusApproved)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	lvl, _ := f.stock.Get("p1", "loc1")
	assert.True(t, decimal.NewFromInt(50).Equal(lvl.Quantity))
}

func TestAdjustmentList_FiltraPorUbicacion(t *testing.T) {
	f := newFixture()
	f.addProduct("p1", "SKU-001", decimal.Zero)
	f.addLocation("loc1", "Bodega Central")
	f.addLocation("loc2", "Bodega Norte")
	uc := newAdjustmentUC(f)

	for _, loc := range []string{"loc1", "loc1", "loc2"} {
		_, err := uc.Submit(context.Background(), "ana", dto.CreateAdjustmentRequest{
			LocationID: loc,
			Reason:     "Other",
			Items: []dto.AdjustmentItemRequest{
				{ProductID: "p1", RecordedQuantity: decimal.NewFromInt(1), CountedQuantity: decimal.NewFromInt(1)},
			},
		})
		require.NoError(t, err)
	}

	rows, err := uc.List("", "loc1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = uc.List("", "loc2")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Other", rows[0].Reason)
}
