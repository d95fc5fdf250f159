package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venta.
const (
	SaleTypeCash   = "cash"
	SaleTypeCredit = "credit"
)

// CreditSale una venta a crédito cargada a una habitación.
type CreditSale struct {
	Quantity   int    `json:"quantity"`
	RoomNumber string `json:"roomNumber"`
}

// ShiftEntry libro del turno de un producto en este dispositivo.
// SoldCredit es derivado: suma de CreditSales[].Quantity.
type ShiftEntry struct {
	InitialQuantity int          `json:"initialQuantity"`
	SoldCash        int          `json:"soldCash"`
	SoldCredit      int          `json:"soldCredit"`
	CreditSales     []CreditSale `json:"creditSales"`
}

// ProductShiftDetail desglose por producto dentro del resumen.
type ProductShiftDetail struct {
	ProductID  string
	Name       string
	Initial    int
	SoldCash   int
	SoldCredit int
	Available  int
	SoldValue  decimal.Decimal
}

// TotalSold unidades vendidas (contado + crédito).
func (d ProductShiftDetail) TotalSold() int {
	return d.SoldCash + d.SoldCredit
}

// ShiftSummary resumen derivado del turno en curso (no se persiste tal cual).
type ShiftSummary struct {
	TotalInitial         int
	TotalSoldCash        int
	TotalSoldCredit      int
	TotalSold            int
	TotalAvailable       int
	ProductsWithSales    int
	TotalSoldValue       decimal.Decimal
	TotalSoldValueCash   decimal.Decimal
	TotalSoldValueCredit decimal.Decimal
	ProductsDetail       []ProductShiftDetail
	GeneratedAt          time.Time
}

// HasSales indica si hay algo que finalizar.
func (s ShiftSummary) HasSales() bool {
	return s.ProductsWithSales > 0
}

// ShiftRecordProduct fila de un producto en el snapshot de cierre.
type ShiftRecordProduct struct {
	ProductID       string       `json:"productId"`
	ProductName     string       `json:"productName"`
	InitialQuantity int          `json:"initialQuantity"`
	SoldCash        int          `json:"soldCash"`
	SoldCredit      int          `json:"soldCredit"`
	CreditSales     []CreditSale `json:"creditSales,omitempty"`
}

// ShiftHistoryRecord snapshot persistido en shift_history_<epoch-millis> al finalizar.
type ShiftHistoryRecord struct {
	Timestamp time.Time            `json:"timestamp"`
	DeviceID  string               `json:"deviceId,omitempty"`
	UserID    string               `json:"userId,omitempty"`
	Products  []ShiftRecordProduct `json:"products"`
}

// ShiftReport fila de la tabla shifts del servidor (visor de administración).
type ShiftReport struct {
	ID                   string
	UserID               string
	UserEmail            string
	DeviceID             string
	ShiftDate            time.Time
	TotalInitialQuantity int
	TotalSold            int
	TotalSoldCash        int
	TotalSoldCredit      int
	TotalSoldValue       decimal.Decimal
	TotalSoldValueCash   decimal.Decimal
	TotalSoldValueCredit decimal.Decimal
	Products             []ShiftRecordProduct
	CreatedAt            time.Time
}
