package shift

import (
	"context"
	"errors"

	"github.com/jhoicas/inventario-turnos/internal/application/dto"
	"github.com/jhoicas/inventario-turnos/internal/domain"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
	"github.com/jhoicas/inventario-turnos/internal/domain/repository"
	domainshift "github.com/jhoicas/inventario-turnos/internal/domain/shift"
)

// UseCase operaciones de turno expuestas a la capa HTTP: carga el catálogo y delega en Ledger/Aggregator.
type UseCase struct {
	products repository.ProductRepository
	ledger   *Ledger
	agg      *Aggregator
	pdf      SummaryPDFGenerator
}

// NewUseCase construye el caso de uso. pdf puede ser nil (sin exportación).
func NewUseCase(products repository.ProductRepository, ledger *Ledger, agg *Aggregator, pdf SummaryPDFGenerator) *UseCase {
	return &UseCase{products: products, ledger: ledger, agg: agg, pdf: pdf}
}

// GetEntry libro del turno de un producto (inicial = existencia del catálogo si no hay libro).
func (uc *UseCase) GetEntry(ctx context.Context, productID string) (*dto.ShiftEntryResponse, error) {
	p, err := uc.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toEntryResponse(p, uc.ledger.GetEntry(ctx, p.ID, p.Quantity)), nil
}

// SetInitialQuantity inicio de turno del producto.
func (uc *UseCase) SetInitialQuantity(ctx context.Context, productID string, quantity int) (*dto.ShiftEntryResponse, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	p, err := uc.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	e, err := uc.ledger.SetInitialQuantity(ctx, p.ID, quantity)
	if err != nil {
		return nil, err
	}
	return toEntryResponse(p, e), nil
}

// RecordSale registra una venta sobre el libro del producto.
func (uc *UseCase) RecordSale(ctx context.Context, productID string, in dto.RecordSaleRequest) (*dto.ShiftEntryResponse, error) {
	p, err := uc.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	e, err := uc.ledger.RecordSale(ctx, SaleInput{
		ProductID:       p.ID,
		Quantity:        in.Quantity,
		Type:            in.SaleType,
		RoomNumber:      in.RoomNumber,
		CatalogQuantity: p.Quantity,
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(p, e), nil
}

// Summary resumen del turno en curso.
func (uc *UseCase) Summary(ctx context.Context) (*dto.ShiftSummaryResponse, error) {
	products, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}
	out := toSummaryResponse(uc.agg.Summarize(ctx, products), uc.agg.DeviceID())
	return &out, nil
}

// SummaryPDF resumen del turno como PDF.
func (uc *UseCase) SummaryPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, errors.New("generador PDF no configurado")
	}
	products, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateShiftSummaryPDF(ctx, uc.agg.Summarize(ctx, products), uc.agg.DeviceID())
}

// Finalize revisa el turno y, si confirm, lo cierra. Sin ventas devuelve ErrNothingToFinalize.
// En un cierre parcial devuelve la respuesta y el *domain.PartialFinalizeError.
func (uc *UseCase) Finalize(ctx context.Context, meta FinalizeMeta, confirm bool) (*dto.FinalizeShiftResponse, error) {
	products, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}
	flow := NewFinalizeFlow(uc.agg, products, meta)
	summary, err := flow.Review(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.FinalizeShiftResponse{
		State:   flow.State().String(),
		Summary: toSummaryResponse(summary, uc.agg.DeviceID()),
	}
	if !confirm {
		_ = flow.Abort()
		out.State = flow.State().String()
		return out, nil
	}
	if err := flow.Confirm(); err != nil {
		return nil, err
	}
	record, err := flow.Finalize(ctx)
	if record == nil {
		return nil, err
	}
	out.State = flow.State().String()
	out.HistoryTimestamp = &record.Timestamp
	var partial *domain.PartialFinalizeError
	if errors.As(err, &partial) {
		out.RemainingProducts = partial.Remaining
	}
	return out, err
}

func (uc *UseCase) product(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *UseCase) catalog(ctx context.Context) ([]entity.Product, error) {
	list, err := uc.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(list))
	for _, p := range list {
		out = append(out, *p)
	}
	return out, nil
}

func toEntryResponse(p *entity.Product, e entity.ShiftEntry) *dto.ShiftEntryResponse {
	sales := make([]dto.CreditSaleResponse, 0, len(e.CreditSales))
	for _, s := range e.CreditSales {
		sales = append(sales, dto.CreditSaleResponse{Quantity: s.Quantity, RoomNumber: s.RoomNumber})
	}
	return &dto.ShiftEntryResponse{
		ProductID:       p.ID,
		ProductName:     p.Name,
		InitialQuantity: e.InitialQuantity,
		SoldCash:        e.SoldCash,
		SoldCredit:      e.SoldCredit,
		Available:       domainshift.Available(e),
		CreditSales:     sales,
	}
}

func toSummaryResponse(s entity.ShiftSummary, deviceID string) dto.ShiftSummaryResponse {
	details := make([]dto.ProductShiftDetailResponse, 0, len(s.ProductsDetail))
	for _, d := range s.ProductsDetail {
		details = append(details, dto.ProductShiftDetailResponse{
			ProductID:  d.ProductID,
			Name:       d.Name,
			Initial:    d.Initial,
			SoldCash:   d.SoldCash,
			SoldCredit: d.SoldCredit,
			Available:  d.Available,
			SoldValue:  d.SoldValue,
		})
	}
	return dto.ShiftSummaryResponse{
		DeviceID:             deviceID,
		TotalInitial:         s.TotalInitial,
		TotalSoldCash:        s.TotalSoldCash,
		TotalSoldCredit:      s.TotalSoldCredit,
		TotalSold:            s.TotalSold,
		TotalAvailable:       s.TotalAvailable,
		ProductsWithSales:    s.ProductsWithSales,
		TotalSoldValue:       s.TotalSoldValue,
		TotalSoldValueCash:   s.TotalSoldValueCash,
		TotalSoldValueCredit: s.TotalSoldValueCredit,
		ProductsDetail:       details,
		GeneratedAt:          s.GeneratedAt,
	}
}
