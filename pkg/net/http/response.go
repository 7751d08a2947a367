package http

import (
	"github.com/muzammil922/dentalcare-reporter/pkg"

	commonsHTTP "github.com/LerianStudio/lib-commons/v2/commons/net/http"
	"github.com/gofiber/fiber/v2"
)

// OK sends an HTTP 200 OK response with a custom body.
// Delegates to lib-commons commonsHTTP.OK for consistency.
func OK(c *fiber.Ctx, s any) error {
	return commonsHTTP.OK(c, s)
}

// BadRequest sends an HTTP 400 Bad Request response with a custom body.
// Delegates to lib-commons commonsHTTP.BadRequest for consistency.
func BadRequest(c *fiber.Ctx, s any) error {
	return commonsHTTP.BadRequest(c, s)
}

// NotFound sends an HTTP 404 Not Found response with a custom code, title and message.
// Delegates to lib-commons commonsHTTP.NotFound for consistency.
func NotFound(c *fiber.Ctx, code, title, message string) error {
	return commonsHTTP.NotFound(c, code, title, message)
}

// UnprocessableEntity sends an HTTP 422 Unprocessable Entity response with a custom code, title and message.
// Delegates to lib-commons commonsHTTP.UnprocessableEntity for consistency.
func UnprocessableEntity(c *fiber.Ctx, code, title, message string) error {
	return commonsHTTP.UnprocessableEntity(c, code, title, message)
}

// InternalServerError sends an HTTP 500 Internal Server Error response.
// Delegates to lib-commons commonsHTTP.InternalServerError for consistency.
func InternalServerError(c *fiber.Ctx, code, title, message string) error {
	return commonsHTTP.InternalServerError(c, code, title, message)
}

// JSONResponseError sends a JSON formatted error response with a custom error struct.
// Uses project-level pkg.ResponseError because the type carries the HTTP status
// as a Code int field, which lib-commons' Response type does not.
func JSONResponseError(c *fiber.Ctx, err pkg.ResponseError) error {
	return c.Status(err.Code).JSON(err)
}
