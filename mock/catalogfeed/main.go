// Command catalogfeed serves a static JSON product feed for local development.
package main

import (
	_ "embed"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gofiber/fiber/v2"
)

//go:embed data.json
var products []byte

func main() {
	app := fiber.New(fiber.Config{AppName: "mock-catalogfeed", DisableStartupMessage: true})

	app.Get("/api/products", func(c *fiber.Ctx) error {
		// upstream latency, 50-200ms
		time.Sleep(time.Duration(50+rand.IntN(150)) * time.Millisecond)

		log.Printf("[catalogfeed] %s %s", c.Method(), c.Path())
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(products)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	log.Println("mock catalog feed listening on :8081")
	log.Fatal(app.Listen(":8081"))
}
