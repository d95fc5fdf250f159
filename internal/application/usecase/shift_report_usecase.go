package usecase

import (
	"context"

	"github.com/jhoicas/inventario-turnos/internal/application/dto"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
	"github.com/jhoicas/inventario-turnos/internal/domain/repository"
)

// ShiftReportUseCase visor de turnos cerrados (solo admin).
type ShiftReportUseCase struct {
	repo repository.ShiftReportRepository
}

// NewShiftReportUseCase construye el caso de uso.
func NewShiftReportUseCase(repo repository.ShiftReportRepository) *ShiftReportUseCase {
	return &ShiftReportUseCase{repo: repo}
}

// List turnos más recientes primero, opcionalmente de un usuario.
func (uc *ShiftReportUseCase) List(ctx context.Context, in dto.ShiftReportListRequest) (*dto.ShiftReportListResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, in.UserID, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShiftReportResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toShiftReportResponse(r))
	}
	return &dto.ShiftReportListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

func toShiftReportResponse(r *entity.ShiftReport) dto.ShiftReportResponse {
	products := make([]dto.ShiftReportProductResponse, 0, len(r.Products))
	for _, p := range r.Products {
		sales := make([]dto.CreditSaleResponse, 0, len(p.CreditSales))
		for _, s := range p.CreditSales {
			sales = append(sales, dto.CreditSaleResponse{Quantity: s.Quantity, RoomNumber: s.RoomNumber})
		}
		products = append(products, dto.ShiftReportProductResponse{
			ProductID:       p.ProductID,
			ProductName:     p.ProductName,
			InitialQuantity: p.InitialQuantity,
			SoldCash:        p.SoldCash,
			SoldCredit:      p.SoldCredit,
			CreditSales:     sales,
		})
	}
	return dto.ShiftReportResponse{
		ID:                   r.ID,
		UserID:               r.UserID,
		UserEmail:            r.UserEmail,
		DeviceID:             r.DeviceID,
		ShiftDate:            r.ShiftDate,
		TotalInitialQuantity: r.TotalInitialQuantity,
		TotalSold:            r.TotalSold,
		TotalSoldCash:        r.TotalSoldCash,
		TotalSoldCredit:      r.TotalSoldCredit,
		TotalSoldValue:       r.TotalSoldValue,
		TotalSoldValueCash:   r.TotalSoldValueCash,
		TotalSoldValueCredit: r.TotalSoldValueCredit,
		Products:             products,
	}
}
