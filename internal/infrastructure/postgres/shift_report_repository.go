package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
	"github.com/jhoicas/inventario-turnos/internal/domain/repository"
)

var (
	_ repository.ShiftReportRepository = (*ShiftReportRepo)(nil)
	_ appshift.ShiftReporter           = (*ShiftReportRepo)(nil)
)

// ShiftReportRepo tablas shifts y shift_products. Cada cierre se inserta en una sola transacción.
type ShiftReportRepo struct {
	q  Querier
	tx *TxRunner
}

// NewShiftReportRepository construye el adaptador sobre el pool.
func NewShiftReportRepository(pool *pgxpool.Pool) *ShiftReportRepo {
	return &ShiftReportRepo{q: pool, tx: NewTxRunner(pool)}
}

// ReportShift receptor del cierre de turno: persiste el reporte en el servidor.
func (r *ShiftReportRepo) ReportShift(ctx context.Context, report entity.ShiftReport) error {
	return r.Create(ctx, &report)
}

// Create inserta el turno y sus filas por producto.
func (r *ShiftReportRepo) Create(ctx context.Context, report *entity.ShiftReport) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	return r.tx.Run(ctx, func(q Querier) error {
		_, err := q.Exec(ctx, `
			INSERT INTO shifts (id, user_id, user_email, device_id, shift_date, total_initial_quantity,
				total_sold, total_sold_cash, total_sold_credit, total_sold_value, total_sold_value_cash,
				total_sold_value_credit, created_at)
			VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			report.ID, report.UserID, report.UserEmail, report.DeviceID, report.ShiftDate,
			report.TotalInitialQuantity, report.TotalSold, report.TotalSoldCash, report.TotalSoldCredit,
			report.TotalSoldValue, report.TotalSoldValueCash, report.TotalSoldValueCredit, report.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert shift: %w", err)
		}
		for _, p := range report.Products {
			credit, err := json.Marshal(creditSalesOrEmpty(p.CreditSales))
			if err != nil {
				return fmt.Errorf("encode credit sales: %w", err)
			}
			_, err = q.Exec(ctx, `
				INSERT INTO shift_products (shift_id, product_id, product_name, initial_quantity, sold_cash,
					sold_credit, credit_sales)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				report.ID, p.ProductID, p.ProductName, p.InitialQuantity, p.SoldCash, p.SoldCredit, credit,
			)
			if err != nil {
				return fmt.Errorf("insert shift product %s: %w", p.ProductID, err)
			}
		}
		return nil
	})
}

// List turnos más recientes primero; userID vacío lista todos.
func (r *ShiftReportRepo) List(ctx context.Context, userID string, limit, offset int) ([]*entity.ShiftReport, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, COALESCE(user_id::text, ''), user_email, device_id, shift_date, total_initial_quantity,
			total_sold, total_sold_cash, total_sold_credit, total_sold_value, total_sold_value_cash,
			total_sold_value_credit, created_at
		FROM shifts
		WHERE ($1 = '' OR user_id::text = $1)
		ORDER BY shift_date DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	list := []*entity.ShiftReport{}
	byID := map[string]*entity.ShiftReport{}
	ids := []string{}
	for rows.Next() {
		var s entity.ShiftReport
		if err := rows.Scan(&s.ID, &s.UserID, &s.UserEmail, &s.DeviceID, &s.ShiftDate, &s.TotalInitialQuantity,
			&s.TotalSold, &s.TotalSoldCash, &s.TotalSoldCredit, &s.TotalSoldValue, &s.TotalSoldValueCash,
			&s.TotalSoldValueCredit, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		list = append(list, &s)
		byID[s.ID] = &s
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	prows, err := r.q.Query(ctx, `
		SELECT shift_id, product_id, product_name, initial_quantity, sold_cash, sold_credit, credit_sales
		FROM shift_products WHERE shift_id = ANY($1) ORDER BY shift_id, product_name`, ids)
	if err != nil {
		return nil, fmt.Errorf("list shift products: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var shiftID string
		var p entity.ShiftRecordProduct
		var credit []byte
		if err := prows.Scan(&shiftID, &p.ProductID, &p.ProductName, &p.InitialQuantity, &p.SoldCash,
			&p.SoldCredit, &credit); err != nil {
			return nil, fmt.Errorf("scan shift product: %w", err)
		}
		if len(credit) > 0 {
			if err := json.Unmarshal(credit, &p.CreditSales); err != nil {
				return nil, fmt.Errorf("decode credit sales: %w", err)
			}
		}
		if s, ok := byID[shiftID]; ok {
			s.Products = append(s.Products, p)
		}
	}
	return list, prows.Err()
}

func creditSalesOrEmpty(s []entity.CreditSale) []entity.CreditSale {
	if s == nil {
		return []entity.CreditSale{}
	}
	return s
}
