package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-turnos/internal/application/dto"
	"github.com/jhoicas/inventario-turnos/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo (protegido; escrituras solo admin).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Nombre o descripción"
// @Param        category  query  string  false  "Categoría"
// @Param        stock     query  string  false  "all | low | out"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200       {object}  dto.ProductListResponse
// @Failure      400       {object}  dto.ValidationErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ProductListRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateQuantity godoc
// @Summary      Ajustar existencia
// @Description  Valores negativos quedan en 0.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateQuantityRequest  true  "Nueva existencia"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/quantity [patch]
func (h *ProductHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateQuantityRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateQuantity(c.UserContext(), c.Params("id"), in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats godoc
// @Summary      Indicadores del catálogo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryStatsResponse
// @Router       /api/products/stats [get]
func (h *ProductHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías del catálogo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/products/categories [get]
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products/low-stock [get]
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
