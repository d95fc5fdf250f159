package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-turnos/internal/application/dto"
	"github.com/jhoicas/inventario-turnos/internal/domain/entity"
)

type memReports struct {
	gotUser          string
	gotLimit, gotOff int
	items            []*entity.ShiftReport
}

func (m *memReports) Create(_ context.Context, r *entity.ShiftReport) error {
	m.items = append(m.items, r)
	return nil
}

func (m *memReports) List(_ context.Context, userID string, limit, offset int) ([]*entity.ShiftReport, error) {
	m.gotUser, m.gotLimit, m.gotOff = userID, limit, offset
	return m.items, nil
}

func TestShiftReportUseCase_List(t *testing.T) {
	repo := &memReports{items: []*entity.ShiftReport{{
		ID: "s1", DeviceID: "caja-1", ShiftDate: time.Date(2026, 3, 14, 22, 30, 0, 0, time.UTC),
		TotalSold: 1, TotalSoldValue: decimal.NewFromInt(5000),
		Products: []entity.ShiftRecordProduct{{
			ProductID: "p2", ProductName: "Cerveza", SoldCredit: 1,
			CreditSales: []entity.CreditSale{{Quantity: 1, RoomNumber: "204"}},
		}},
	}}}
	uc := NewShiftReportUseCase(repo)

	out, err := uc.List(context.Background(), dto.ShiftReportListRequest{UserID: "u1", PageRequest: dto.PageRequest{Limit: 500}})
	require.NoError(t, err)
	assert.Equal(t, "u1", repo.gotUser)
	assert.Equal(t, 100, repo.gotLimit)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "204", out.Items[0].Products[0].CreditSales[0].RoomNumber)
}
