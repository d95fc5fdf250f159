package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-turnos/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los errores nombran el campo como viaja en el JSON/query.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// validationFields campo → regla incumplida.
func validationFields(err error) map[string]string {
	out := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// parseBody decodifica el JSON y valida los tags. Si falla ya escribió la respuesta 400 y devuelve false.
func parseBody(c *fiber.Ctx, in any) (bool, error) {
	if err := c.BodyParser(in); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return checkStruct(c, in)
}

// parseQuery igual que parseBody para query params.
func parseQuery(c *fiber.Ctx, in any) (bool, error) {
	if err := c.QueryParser(in); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	return checkStruct(c, in)
}

func checkStruct(c *fiber.Ctx, in any) (bool, error) {
	if err := validate.Struct(in); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Fields:  validationFields(err),
		})
	}
	return true, nil
}
