package serverutils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into a
// 400 with a field-level message.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Validation failed on field "+errs[0].Field())
		}
		return fiber.NewError(fiber.StatusBadRequest, "Validation failed")
	}
	return nil
}
