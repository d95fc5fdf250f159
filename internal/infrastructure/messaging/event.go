// Package messaging publica eventos del turno en RabbitMQ.
package messaging

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

// ShiftFinalizedQueue cola (y routing key) del evento de cierre.
const ShiftFinalizedQueue = "shift.finalized"

// ShiftFinalizedEvent payload publicado al cerrar un turno; suficiente para conciliar sin consultar la DB.
type ShiftFinalizedEvent struct {
	DeviceID             string                `json:"device_id"`
	UserID               string                `json:"user_id,omitempty"`
	UserEmail            string                `json:"user_email,omitempty"`
	ShiftDate            string                `json:"shift_date"`
	TotalInitialQuantity int                   `json:"total_initial_quantity"`
	TotalSold            int                   `json:"total_sold"`
	TotalSoldCash        int                   `json:"total_sold_cash"`
	TotalSoldCredit      int                   `json:"total_sold_credit"`
	TotalSoldValue       decimal.Decimal       `json:"total_sold_value"`
	TotalSoldValueCash   decimal.Decimal       `json:"total_sold_value_cash"`
	TotalSoldValueCredit decimal.Decimal       `json:"total_sold_value_credit"`
	Products             []ShiftProductPayload `json:"products"`
}

// ShiftProductPayload fila por producto del evento.
type ShiftProductPayload struct {
	ProductID   string              `json:"product_id"`
	ProductName string              `json:"product_name"`
	Initial     int                 `json:"initial"`
	SoldCash    int                 `json:"sold_cash"`
	SoldCredit  int                 `json:"sold_credit"`
	CreditSales []entity.CreditSale `json:"credit_sales,omitempty"`
}

// NewShiftFinalizedEvent arma el evento; solo incluye productos con ventas.
func NewShiftFinalizedEvent(r entity.ShiftReport) ShiftFinalizedEvent {
	ev := ShiftFinalizedEvent{
		DeviceID:             r.DeviceID,
		UserID:               r.UserID,
		UserEmail:            r.UserEmail,
		ShiftDate:            r.ShiftDate.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		TotalInitialQuantity: r.TotalInitialQuantity,
		TotalSold:            r.TotalSold,
		TotalSoldCash:        r.TotalSoldCash,
		TotalSoldCredit:      r.TotalSoldCredit,
		TotalSoldValue:       r.TotalSoldValue,
		TotalSoldValueCash:   r.TotalSoldValueCash,
		TotalSoldValueCredit: r.TotalSoldValueCredit,
		Products:             []ShiftProductPayload{},
	}
	for _, p := range r.Products {
		if p.SoldCash+p.SoldCredit == 0 {
			continue
		}
		ev.Products = append(ev.Products, ShiftProductPayload{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Initial:     p.InitialQuantity,
			SoldCash:    p.SoldCash,
			SoldCredit:  p.SoldCredit,
			CreditSales: p.CreditSales,
		})
	}
	return ev
}
