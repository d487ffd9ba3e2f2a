package utils

import "github.com/gofiber/fiber/v2"

// APIResponse is the result envelope returned by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
}

// SendSuccess sends a successful JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendCreated sends a 201 success envelope.
func SendCreated(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusCreated, message, data)
}

// SendSuccessWithStatus sends a success payload using the provided HTTP status code.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendError sends a failure envelope. The message doubles as the error text
// unless a more specific error detail is given.
func SendError(c *fiber.Ctx, status int, message string, detail ...string) error {
	if message == "" {
		message = "error"
	}

	errText := message
	if len(detail) > 0 && detail[0] != "" {
		errText = detail[0]
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Error:   errText,
	})
}
