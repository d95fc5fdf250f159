package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-turnos/internal/application/auth"
	"github.com/jhoicas/inventario-turnos/internal/application/dto"
	"github.com/jhoicas/inventario-turnos/internal/application/usecase"
	"github.com/jhoicas/inventario-turnos/internal/domain"
)

// AuthHandler maneja registro, login y perfil.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	users *usecase.UserUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, users *usecase.UserUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, users: users}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  El primer usuario registrado queda como admin.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "cuenta inactiva o suspendida"})
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
