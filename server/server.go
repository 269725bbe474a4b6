package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"discover/featured"
	"discover/listmodel"
	"discover/models"
	"discover/resources"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const keepAliveInterval = 5 * time.Second

type ServerConfig struct {
	// The featured list served to clients
	Model *listmodel.Model

	// Catalog used for resource lookups
	Lookup resources.Lookup

	// Rebuilds Model, may be nil to disable the refresh endpoint
	Refresher *featured.Refresher

	// Broadcast refreshes to SSE clients
	Broadcaster *Broadcaster

	// Origins allowed by CORS, e.g. "http://localhost:3001"
	AllowOrigins string
}

// Returns a fiber.App serving the featured list and catalog lookups
func Server(config *ServerConfig) *fiber.App {
	bc := config.Broadcaster
	if bc == nil {
		bc = NewBroadcaster()
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	// Middleware to track the latency of each request
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		log.WithFields(log.Fields{
			"method":  c.Method(),
			"route":   c.Route().Path,
			"status":  c.Response().StatusCode(),
			"latency": time.Since(start),
		}).Info("Request")
		return err
	})

	app.Use(requestid.New(requestid.ConfigDefault))
	app.Use(compress.New())

	if config.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     config.AllowOrigins,
			AllowHeaders:     "Cache-Control",
			AllowCredentials: true,
		}))
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/featured", func(c *fiber.Ctx) error {
		if config.Refresher != nil {
			if t := config.Refresher.LastRefresh(); !t.IsZero() {
				c.Set(fiber.HeaderLastModified, t.UTC().Format(http.TimeFormat))
			}
		}
		return c.JSON(config.Model.Rows())
	})

	app.Post("/featured/refresh", func(c *fiber.Ctx) error {
		if config.Refresher == nil {
			return c.Status(fiber.StatusNotImplemented).SendString("Refresh not configured")
		}
		if err := config.Refresher.Refresh(c.UserContext()); err != nil {
			log.WithFields(log.Fields{
				"error": err,
			}).Error("Error refreshing featured applications")
			return c.Status(fiber.StatusBadGateway).SendString("Error refreshing featured applications")
		}
		return c.JSON(config.Model.Rows())
	})

	app.Get("/resources/:package", func(c *fiber.Ctx) error {
		res, ok := config.Lookup.ResourceByPackageName(c.Params("package"))
		if !ok {
			return c.Status(fiber.StatusNotFound).SendString("Resource not found")
		}
		return c.JSON(res)
	})

	app.Delete("/featured/sse", func(c *fiber.Ctx) error {
		bc.RemoveClient(c.Query("key", ""))
		return c.SendString("OK")
	})

	app.Get("/featured/sse", func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("Transfer-Encoding", "chunked")

		// Snapshot sent right after the init event
		initial, err := json.Marshal(config.Model.Rows())
		if err != nil {
			return err
		}

		key := uuid.New().String()
		events := make(chan models.RefreshEvent, 10)
		bc.AddClient(key, events)

		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			aliveChan := time.NewTicker(keepAliveInterval)
			defer aliveChan.Stop()
			defer func() {
				log.Infof("Cleaning up SSE stream for client: %s", key)
				bc.RemoveClient(key)
			}()

			fmt.Fprintf(w, "event: init\ndata: %s\n\n", key)
			fmt.Fprintf(w, "event: featured\ndata: %s\n\n", initial)
			if err := w.Flush(); err != nil {
				log.Errorf("Failed to send init event: %v", err)
				return
			}

			for {
				select {
				case <-aliveChan.C:
					if _, err := fmt.Fprintf(w, "event: ping\ndata: \n\n"); err != nil {
						log.Warnf("Failed to send ping to client %s: %v", key, err)
						return
					}
					if err := w.Flush(); err != nil {
						log.Warnf("Failed to flush ping for client %s: %v", key, err)
						return
					}

				case evt, ok := <-events:
					if !ok {
						log.Warnf("Refresh channel closed for client %s", key)
						return
					}
					data, err := json.Marshal(evt.Rows)
					if err != nil {
						log.Errorf("Error marshalling rows for client %s: %v", key, err)
						continue
					}
					if _, err := fmt.Fprintf(w, "event: featured\ndata: %s\n\n", data); err != nil {
						log.Warnf("Failed to send featured event to client %s: %v", key, err)
						return
					}
					if err := w.Flush(); err != nil {
						log.Warnf("Failed to flush featured event for client %s: %v", key, err)
						return
					}
				}
			}
		}))

		return nil
	})

	return app
}
