package shift

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

// Summarize reduce los libros de todos los productos a un resumen.
// Un producto sin entrada en entries aporta cero a todos los totales (no la existencia del catálogo).
// ProductsDetail solo incluye productos con ventas, ordenados por unidades vendidas desc
// conservando el orden del catálogo en empates.
func Summarize(products []entity.Product, entries map[string]entity.ShiftEntry, now time.Time) entity.ShiftSummary {
	s := entity.ShiftSummary{
		TotalSoldValue:       decimal.Zero,
		TotalSoldValueCash:   decimal.Zero,
		TotalSoldValueCredit: decimal.Zero,
		ProductsDetail:       []entity.ProductShiftDetail{},
		GeneratedAt:          now,
	}
	for _, p := range products {
		e, ok := entries[p.ID]
		if !ok {
			continue
		}
		available := Available(e)
		s.TotalInitial += e.InitialQuantity
		s.TotalSoldCash += e.SoldCash
		s.TotalSoldCredit += e.SoldCredit
		s.TotalAvailable += available

		cashValue := p.Price.Mul(decimal.NewFromInt(int64(e.SoldCash)))
		creditValue := p.Price.Mul(decimal.NewFromInt(int64(e.SoldCredit)))
		s.TotalSoldValueCash = s.TotalSoldValueCash.Add(cashValue)
		s.TotalSoldValueCredit = s.TotalSoldValueCredit.Add(creditValue)

		if e.SoldCash+e.SoldCredit > 0 {
			s.ProductsDetail = append(s.ProductsDetail, entity.ProductShiftDetail{
				ProductID:  p.ID,
				Name:       p.Name,
				Initial:    e.InitialQuantity,
				SoldCash:   e.SoldCash,
				SoldCredit: e.SoldCredit,
				Available:  available,
				SoldValue:  cashValue.Add(creditValue),
			})
		}
	}
	s.TotalSold = s.TotalSoldCash + s.TotalSoldCredit
	s.TotalSoldValue = s.TotalSoldValueCash.Add(s.TotalSoldValueCredit)
	s.ProductsWithSales = len(s.ProductsDetail)

	sort.SliceStable(s.ProductsDetail, func(i, j int) bool {
		return s.ProductsDetail[i].TotalSold() > s.ProductsDetail[j].TotalSold()
	})
	return s
}

// Snapshot filas del registro de cierre para todos los productos; sin entrada = ceros.
func Snapshot(products []entity.Product, entries map[string]entity.ShiftEntry) []entity.ShiftRecordProduct {
	rows := make([]entity.ShiftRecordProduct, 0, len(products))
	for _, p := range products {
		e := entries[p.ID]
		rows = append(rows, entity.ShiftRecordProduct{
			ProductID:       p.ID,
			ProductName:     p.Name,
			InitialQuantity: e.InitialQuantity,
			SoldCash:        e.SoldCash,
			SoldCredit:      e.SoldCredit,
			CreditSales:     e.CreditSales,
		})
	}
	return rows
}
