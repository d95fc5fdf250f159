// Package shift contiene la aritmética pura del libro de turno: valores por defecto,
// disponibilidad, aplicación de ventas y reducción a resumen. No conoce el almacenamiento.
package shift

import (
	"strings"

	"github.com/jhoicas/inventario-turnos/internal/domain"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

// DefaultEntry estado de un producto que aún no tiene libro: inicial = existencia del catálogo, sin ventas.
func DefaultEntry(catalogQuantity int) entity.ShiftEntry {
	if catalogQuantity < 0 {
		catalogQuantity = 0
	}
	return entity.ShiftEntry{
		InitialQuantity: catalogQuantity,
		CreditSales:     []entity.CreditSale{},
	}
}

// Available max(0, inicial - contado - crédito).
func Available(e entity.ShiftEntry) int {
	n := e.InitialQuantity - e.SoldCash - e.SoldCredit
	if n < 0 {
		return 0
	}
	return n
}

// SumCredit suma las cantidades de las ventas a crédito.
func SumCredit(sales []entity.CreditSale) int {
	total := 0
	for _, s := range sales {
		total += s.Quantity
	}
	return total
}

// Normalize ajusta una entrada leída del almacenamiento.
// Entradas antiguas sin detalle de crédito conservan su soldCredit.
func Normalize(e entity.ShiftEntry) entity.ShiftEntry {
	if e.CreditSales == nil {
		e.CreditSales = []entity.CreditSale{}
	}
	if len(e.CreditSales) > 0 {
		e.SoldCredit = SumCredit(e.CreditSales)
	}
	return e
}

// ValidateSale verifica las precondiciones de una venta contra el estado actual.
func ValidateSale(e entity.ShiftEntry, quantity int, saleType, roomNumber string) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	switch saleType {
	case entity.SaleTypeCash:
	case entity.SaleTypeCredit:
		if strings.TrimSpace(roomNumber) == "" {
			return domain.ErrMissingRoomNumber
		}
	default:
		return domain.ErrInvalidInput
	}
	if quantity > Available(e) {
		return domain.ErrInsufficientStock
	}
	return nil
}

// ApplySale devuelve una copia de e con la venta aplicada. No valida; llamar ValidateSale antes.
func ApplySale(e entity.ShiftEntry, quantity int, saleType, roomNumber string) entity.ShiftEntry {
	out := e
	out.CreditSales = append([]entity.CreditSale{}, e.CreditSales...)
	if saleType == entity.SaleTypeCredit {
		out.CreditSales = append(out.CreditSales, entity.CreditSale{
			Quantity:   quantity,
			RoomNumber: strings.TrimSpace(roomNumber),
		})
		out.SoldCredit = SumCredit(out.CreditSales)
		return out
	}
	out.SoldCash += quantity
	return out
}
