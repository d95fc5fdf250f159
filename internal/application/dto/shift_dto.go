package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetInitialQuantityRequest inicio de turno de un producto.
type SetInitialQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// RecordSaleRequest venta de contado o a crédito.
type RecordSaleRequest struct {
	Quantity   int    `json:"quantity"`
	SaleType   string `json:"sale_type" validate:"required,oneof=cash credit"`
	RoomNumber string `json:"room_number" validate:"max=20"`
}

// FinalizeShiftRequest confirm=false solo revisa el resumen.
type FinalizeShiftRequest struct {
	Confirm bool `json:"confirm"`
}

// CreditSaleResponse una venta a crédito.
type CreditSaleResponse struct {
	Quantity   int    `json:"quantity"`
	RoomNumber string `json:"room_number"`
}

// ShiftEntryResponse libro del turno de un producto.
type ShiftEntryResponse struct {
	ProductID       string               `json:"product_id"`
	ProductName     string               `json:"product_name"`
	InitialQuantity int                  `json:"initial_quantity"`
	SoldCash        int                  `json:"sold_cash"`
	SoldCredit      int                  `json:"sold_credit"`
	Available       int                  `json:"available"`
	CreditSales     []CreditSaleResponse `json:"credit_sales"`
}

// ProductShiftDetailResponse desglose por producto en el resumen.
type ProductShiftDetailResponse struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	Initial    int             `json:"initial"`
	SoldCash   int             `json:"sold_cash"`
	SoldCredit int             `json:"sold_credit"`
	Available  int             `json:"available"`
	SoldValue  decimal.Decimal `json:"sold_value"`
}

// ShiftSummaryResponse resumen del turno en curso.
type ShiftSummaryResponse struct {
	DeviceID             string                       `json:"device_id"`
	TotalInitial         int                          `json:"total_initial"`
	TotalSoldCash        int                          `json:"total_sold_cash"`
	TotalSoldCredit      int                          `json:"total_sold_credit"`
	TotalSold            int                          `json:"total_sold"`
	TotalAvailable       int                          `json:"total_available"`
	ProductsWithSales    int                          `json:"products_with_sales"`
	TotalSoldValue       decimal.Decimal              `json:"total_sold_value"`
	TotalSoldValueCash   decimal.Decimal              `json:"total_sold_value_cash"`
	TotalSoldValueCredit decimal.Decimal              `json:"total_sold_value_credit"`
	ProductsDetail       []ProductShiftDetailResponse `json:"products_detail"`
	GeneratedAt          time.Time                    `json:"generated_at"`
}

// FinalizeShiftResponse resultado del cierre (o solo revisión).
type FinalizeShiftResponse struct {
	State             string               `json:"state"`
	Summary           ShiftSummaryResponse `json:"summary"`
	HistoryTimestamp  *time.Time           `json:"history_timestamp,omitempty"`
	RemainingProducts []string             `json:"remaining_products,omitempty"`
}

// ShiftReportResponse fila del visor de turnos (admin).
type ShiftReportResponse struct {
	ID                   string                       `json:"id"`
	UserID               string                       `json:"user_id"`
	UserEmail            string                       `json:"user_email"`
	DeviceID             string                       `json:"device_id"`
	ShiftDate            time.Time                    `json:"shift_date"`
	TotalInitialQuantity int                          `json:"total_initial_quantity"`
	TotalSold            int                          `json:"total_sold"`
	TotalSoldCash        int                          `json:"total_sold_cash"`
	TotalSoldCredit      int                          `json:"total_sold_credit"`
	TotalSoldValue       decimal.Decimal              `json:"total_sold_value"`
	TotalSoldValueCash   decimal.Decimal              `json:"total_sold_value_cash"`
	TotalSoldValueCredit decimal.Decimal              `json:"total_sold_value_credit"`
	Products             []ShiftReportProductResponse `json:"products"`
}

// ShiftReportProductResponse fila por producto de un turno cerrado.
type ShiftReportProductResponse struct {
	ProductID       string               `json:"product_id"`
	ProductName     string               `json:"product_name"`
	InitialQuantity int                  `json:"initial_quantity"`
	SoldCash        int                  `json:"sold_cash"`
	SoldCredit      int                  `json:"sold_credit"`
	CreditSales     []CreditSaleResponse `json:"credit_sales"`
}

// ShiftReportListRequest filtros del visor de turnos.
type ShiftReportListRequest struct {
	PageRequest
	UserID string `query:"user_id" validate:"omitempty,uuid"`
}

// ShiftReportListResponse lista paginada de turnos cerrados.
type ShiftReportListResponse struct {
	Items []ShiftReportResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
