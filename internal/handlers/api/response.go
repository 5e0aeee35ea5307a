package api

import (
	"github.com/gofiber/fiber/v3"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

// Envelope wraps every /api response. Exactly one of Data and Error is set.
type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

func respond(c fiber.Ctx, data any) error {
	return c.JSON(Envelope{Status: statusOK, Data: data})
}

// Fail answers with status and an error envelope carrying msg.
func Fail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(Envelope{Status: statusError, Error: msg})
}
