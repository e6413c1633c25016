package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/gointegral"
	"github.com/njchilds90/gointegral/internal/config"
)

const requestIDHeader = "X-Request-ID"

func newRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	// POST /tool - handle a tool call
	router.POST("/tool", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.Server.MaxBodyBytes)
		defer c.Request.Body.Close()

		dec := json.NewDecoder(c.Request.Body)
		dec.DisallowUnknownFields()

		var req gointegral.ToolRequest
		if err := dec.Decode(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: trailing data"})
			return
		}

		resp := gointegral.HandleToolCall(req)
		if resp.Error != "" {
			logrus.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"tool":       req.Tool,
				"kind":       resp.ErrorKind,
			}).Info(resp.Error)
		}
		c.JSON(http.StatusOK, resp)
	})

	// GET /schema - return tool schema for agent registration
	router.GET("/schema", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(gointegral.ToolSpec()))
	})

	// GET /health - liveness check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	return router
}

// requestLogger tags each request with an id and logs it at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"elapsed":    time.Since(start),
		}).Debug("request served")
	}
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down.
func serve(ctx context.Context, cfg *config.Config) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.Infof("gointegral tool server listening on %s", cfg.Server.Addr)
		logrus.Infof("  POST /tool   - execute a tool call")
		logrus.Infof("  GET  /schema - tool schema for agent registration")
		logrus.Infof("  GET  /health - health check")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logrus.Info("shutting down tool server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
