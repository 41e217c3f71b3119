package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestRequestTimeoutMiddleware_DeadlineReachesHandlers(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Use(requestTimeoutMiddleware(50 * time.Millisecond))
	app.Get("/slow", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if _, ok := ctx.Deadline(); !ok {
			t.Error("handler context carries no deadline")
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		select {
		case <-ctx.Done():
			return c.SendStatus(fiber.StatusRequestTimeout)
		case <-time.After(2 * time.Second):
			return c.SendStatus(fiber.StatusOK)
		}
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/slow", nil), 5000)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusRequestTimeout {
		t.Fatalf("status = %d, want %d (timeout must cancel the handler context)",
			resp.StatusCode, fiber.StatusRequestTimeout)
	}
}

func TestRequestTimeoutMiddleware_FastRequestCompletes(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Use(requestTimeoutMiddleware(time.Second))
	app.Get("/fast", func(c *fiber.Ctx) error {
		if err := c.UserContext().Err(); err != nil {
			t.Errorf("context already done: %v", err)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/fast", nil), 5000)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
