package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-turnos/internal/application/dto"
	appshift "github.com/jhoicas/inventario-turnos/internal/application/shift"
	"github.com/jhoicas/inventario-turnos/internal/domain"
)

// ShiftHandler libro de turno del dispositivo: entradas, ventas, resumen y cierre.
type ShiftHandler struct {
	uc *appshift.UseCase
}

// NewShiftHandler construye el handler.
func NewShiftHandler(uc *appshift.UseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// GetEntry godoc
// @Summary      Libro del turno de un producto
// @Description  Sin libro guardado la cantidad inicial es la existencia del catálogo.
// @Tags         shift
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ShiftEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shift/entries/{productId} [get]
func (h *ShiftHandler) GetEntry(c *fiber.Ctx) error {
	out, err := h.uc.GetEntry(c.UserContext(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetInitialQuantity godoc
// @Summary      Iniciar turno de un producto
// @Description  Reinicia las ventas del producto y fija la cantidad inicial.
// @Tags         shift
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.SetInitialQuantityRequest  true  "Cantidad inicial"
// @Success      200  {object}  dto.ShiftEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/shift/entries/{productId}/initial [put]
func (h *ShiftHandler) SetInitialQuantity(c *fiber.Ctx) error {
	var in dto.SetInitialQuantityRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetInitialQuantity(c.UserContext(), c.Params("productId"), *in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RecordSale godoc
// @Summary      Registrar venta
// @Description  sale_type cash o credit; credit requiere room_number.
// @Tags         shift
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Param        body       body  dto.RecordSaleRequest  true  "Venta"
// @Success      201  {object}  dto.ShiftEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shift/entries/{productId}/sales [post]
func (h *ShiftHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.RecordSale(c.UserContext(), c.Params("productId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Summary godoc
// @Summary      Resumen del turno en curso
// @Tags         shift
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ShiftSummaryResponse
// @Router       /api/shift/summary [get]
func (h *ShiftHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SummaryPDF godoc
// @Summary      Resumen del turno en PDF
// @Tags         shift
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/shift/summary.pdf [get]
func (h *ShiftHandler) SummaryPDF(c *fiber.Ctx) error {
	out, err := h.uc.SummaryPDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="turno-%s.pdf"`, time.Now().Format("20060102-1504")))
	return c.Send(out)
}

// Finalize godoc
// @Summary      Cerrar turno
// @Description  confirm=false solo devuelve el resumen a revisar. confirm=true guarda el histórico y limpia el libro.
// @Tags         shift
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FinalizeShiftRequest  true  "Confirmación"
// @Success      200  {object}  dto.FinalizeShiftResponse
// @Success      207  {object}  dto.FinalizeShiftResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/shift/finalize [post]
func (h *ShiftHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeShiftRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	meta := appshift.FinalizeMeta{UserID: GetUserID(c), UserEmail: GetEmail(c)}
	out, err := h.uc.Finalize(c.UserContext(), meta, in.Confirm)
	if err != nil {
		if out != nil && errors.Is(err, domain.ErrPartialFinalize) {
			return c.Status(fiber.StatusMultiStatus).JSON(out)
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}
