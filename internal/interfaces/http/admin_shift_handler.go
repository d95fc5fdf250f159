package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-turnos/internal/application/dto"
	"github.com/jhoicas/inventario-turnos/internal/application/usecase"
)

// AdminShiftHandler visor de turnos cerrados (solo admin).
type AdminShiftHandler struct {
	uc *usecase.ShiftReportUseCase
}

// NewAdminShiftHandler construye el handler.
func NewAdminShiftHandler(uc *usecase.ShiftReportUseCase) *AdminShiftHandler {
	return &AdminShiftHandler{uc: uc}
}

// List godoc
// @Summary      Turnos cerrados
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "Filtrar por usuario"
// @Param        limit    query  int     false  "Límite"   default(20)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.ShiftReportListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/shifts [get]
func (h *AdminShiftHandler) List(c *fiber.Ctx) error {
	var in dto.ShiftReportListRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
