// Command partnerfeed serves a static XML partner feed for local development.
package main

import (
	_ "embed"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gofiber/fiber/v2"
)

//go:embed data.xml
var feed []byte

func main() {
	app := fiber.New(fiber.Config{AppName: "mock-partnerfeed", DisableStartupMessage: true})

	app.Get("/feed", func(c *fiber.Ctx) error {
		// upstream latency, 100-300ms
		time.Sleep(time.Duration(100+rand.IntN(200)) * time.Millisecond)

		log.Printf("[partnerfeed] %s %s", c.Method(), c.Path())
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
		return c.Send(feed)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
		return c.SendString(`<health><status>healthy</status></health>`)
	})

	log.Println("mock partner feed listening on :8082")
	log.Fatal(app.Listen(":8082"))
}
