package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stockmaster/stockmaster-pro/internal/application/dto"
	"github.com/stockmaster/stockmaster-pro/internal/domain"
	"github.com/stockmaster/stockmaster-pro/internal/domain/document"
	"github.com/stockmaster/stockmaster-pro/internal/domain/entity"
	"github.com/stockmaster/stockmaster-pro/internal/domain/repository"
)

// DeliveryUseCase envío y avance de órdenes de entrega.
// Modelo híbrido de stock: picking reserva lo solicitado, shipped libera la
// reserva y descuenta el on-hand, delivered es solo cambio de estado.
type DeliveryUseCase struct {
	txRunner     TxRunner
	deliveryRepo repository.DeliveryRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	pdfGen       DeliveryNoteGenerator
}

// NewDeliveryUseCase construye el caso de uso. pdfGen puede ser nil si la
// generación de notas de entrega no está habilitada.
func NewDeliveryUseCase(
	txRunner TxRunner,
	deliveryRepo repository.DeliveryRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	pdfGen DeliveryNoteGenerator,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		txRunner:     txRunner,
		deliveryRepo: deliveryRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		pdfGen:       pdfGen,
	}
}

// Submit valida y persiste una orden de entrega en estado draft.
func (uc *DeliveryUseCase) Submit(ctx context.Context, actor string, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if in.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer_name es requerido", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: items es requerido", domain.ErrInvalidInput)
	}
	for i, item := range in.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: items[%d].product_id es requerido", domain.ErrInvalidInput, i)
		}
		if item.LocationID == "" {
			return nil, fmt.Errorf("%w: items[%d].location_id es requerido", domain.ErrInvalidInput, i)
		}
		if !item.QuantityRequested.IsPositive() {
			return nil, fmt.Errorf("%w: items[%d].quantity_requested debe ser mayor que cero", domain.ErrInvalidInput, i)
		}
	}
	if err := validateLineRefs(uc.productRepo, uc.locationRepo, deliveryLineRefs(in.Items)); err != nil {
		return nil, err
	}

	delivery := &entity.Delivery{
		ID:              uuid.New().String(),
		SalesOrderID:    in.SalesOrderID,
		CustomerName:    in.CustomerName,
		ShippingAddress: in.ShippingAddress,
		Status:          document.Initial(document.KindDelivery),
		TotalItems:      len(in.Items),
		Notes:           in.Notes,
		CreatedBy:       actor,
		CreatedAt:       time.Now(),
	}
	for _, item := range in.Items {
		delivery.Items = append(delivery.Items, entity.DeliveryItem{
			ID:                uuid.New().String(),
			DeliveryID:        delivery.ID,
			ProductID:         item.ProductID,
			LocationID:        item.LocationID,
			QuantityRequested: item.QuantityRequested,
		})
	}

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		seq, err := r.Deliveries.NextNumber()
		if err != nil {
			return err
		}
		delivery.OrderNumber = document.FormatNumber(document.KindDelivery, seq)
		return r.Deliveries.Create(delivery)
	})
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(delivery), nil
}

// AdvanceStatus avanza la entrega un paso. Efectos de stock por transición:
//   - picking: reserva quantity_requested en la ubicación de cada línea
//     (falla con ErrInsufficientStock si el disponible no alcanza).
//   - shipped: libera la reserva y descuenta el on-hand.
//   - packing y delivered: solo cambio de estado.
func (uc *DeliveryUseCase) AdvanceStatus(ctx context.Context, id, target string) (*dto.DeliveryResponse, error) {
	var delivery *entity.Delivery
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		delivery, err = r.Deliveries.GetByID(id)
		if err != nil {
			return err
		}
		if delivery == nil {
			return fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
		}
		if err := document.ValidateAdvance(document.KindDelivery, delivery.Status, target); err != nil {
			return err
		}
		switch target {
		case entity.DeliveryStatusPicking:
			for _, item := range delivery.Items {
				level, err := r.Stock.GetForUpdate(item.ProductID, item.LocationID)
				if err != nil {
					return err
				}
				if level.Available().LessThan(item.QuantityRequested) {
					return fmt.Errorf("%w: producto %s en ubicación %s", domain.ErrInsufficientStock, item.ProductID, item.LocationID)
				}
				if err := r.Stock.ApplyDelta(item.ProductID, item.LocationID, zero, item.QuantityRequested); err != nil {
					return err
				}
			}
		case entity.DeliveryStatusShipped:
			for _, item := range delivery.Items {
				level, err := r.Stock.GetForUpdate(item.ProductID, item.LocationID)
				if err != nil {
					return err
				}
				if level.Quantity.LessThan(item.QuantityRequested) {
					return fmt.Errorf("%w: producto %s en ubicación %s", domain.ErrInsufficientStock, item.ProductID, item.LocationID)
				}
				if err := r.Stock.ApplyDelta(item.ProductID, item.LocationID, item.QuantityRequested.Neg(), item.QuantityRequested.Neg()); err != nil {
					return err
				}
			}
		}
		if err := r.Deliveries.UpdateStatus(id, target); err != nil {
			return err
		}
		delivery.Status = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(delivery), nil
}

// GetByID devuelve la entrega con sus líneas, o nil si no existe.
func (uc *DeliveryUseCase) GetByID(id string) (*dto.DeliveryResponse, error) {
	delivery, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, nil
	}
	return toDeliveryResponse(delivery), nil
}

// List lista entregas con filtro opcional de estado.
func (uc *DeliveryUseCase) List(status string) ([]dto.DocumentListItemResponse, error) {
	rows, err := uc.deliveryRepo.List(status)
	if err != nil {
		return nil, err
	}
	return toListResponse(rows), nil
}

// GenerateNote genera la nota de entrega en PDF (documento de picking).
func (uc *DeliveryUseCase) GenerateNote(ctx context.Context, id string) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, fmt.Errorf("%w: generación de PDF no habilitada", domain.ErrInvalidInput)
	}
	delivery, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
	}
	lines := make([]DeliveryNoteLine, 0, len(delivery.Items))
	for _, item := range delivery.Items {
		line := DeliveryNoteLine{Quantity: item.QuantityRequested}
		if p, err := uc.productRepo.GetByID(item.ProductID); err == nil && p != nil {
			line.SKU = p.SKU
			line.ProductName = p.Name
		}
		if l, err := uc.locationRepo.GetByID(item.LocationID); err == nil && l != nil {
			line.LocationName = l.Name
		}
		lines = append(lines, line)
	}
	return uc.pdfGen.GenerateDeliveryNote(ctx, delivery, lines)
}

func deliveryLineRefs(items []dto.DeliveryItemRequest) []lineRef {
	refs := make([]lineRef, 0, len(items))
	for i, item := range items {
		refs = append(refs, lineRef{Index: i, ProductID: item.ProductID, LocationID: item.LocationID})
	}
	return refs
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	out := &dto.DeliveryResponse{
		ID:              d.ID,
		OrderNumber:     d.OrderNumber,
		SalesOrderID:    d.SalesOrderID,
		CustomerName:    d.CustomerName,
		ShippingAddress: d.ShippingAddress,
		Status:          d.Status,
		TotalItems:      d.TotalItems,
		Notes:           d.Notes,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
	}
	for _, item := range d.Items {
		out.Items = append(out.Items, dto.DeliveryItemResponse{
			ID:                item.ID,
			ProductID:         item.ProductID,
			LocationID:        item.LocationID,
			QuantityRequested: item.QuantityRequested,
		})
	}
	return out
}
