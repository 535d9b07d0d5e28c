// Package server exposes the generator over HTTP.
//
//	GET /tiling.svg?depth=5
//	GET /tiling.png?x=300&y=150&length=100&fullscreen=1
//	GET /tiling.geojson?random=1&seed=42
//	GET /healthz
package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"penrose-kites/export"
	"penrose-kites/generator"
	"penrose-kites/kdtile"
	"penrose-kites/render"
)

// RequestIDHeader carries the request id on both the request and the
// response.
const RequestIDHeader = "X-Request-ID"

var errBadQuery = errors.New("server: bad query")

type Server struct {
	gen *generator.Generator
	log *slog.Logger
}

// New returns a gin engine serving gen.
func New(gen *generator.Generator, log *slog.Logger) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{gen: gen, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestID, s.accessLog)
	r.GET("/healthz", s.healthz)
	r.GET("/tiling.svg", s.tiling(s.svg))
	r.GET("/tiling.png", s.tiling(s.png))
	r.GET("/tiling.geojson", s.tiling(s.geojson))
	return r
}

func (s *Server) requestID(c *gin.Context) {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	c.Set("requestID", id)
	c.Header(RequestIDHeader, id)
	c.Next()
}

func (s *Server) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.log.Info("request",
		"id", c.GetString("requestID"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"query", c.Request.URL.RawQuery,
		"status", c.Writer.Status(),
		"elapsed", time.Since(start))
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type writeFunc func(c *gin.Context, res *generator.Result, fullscreen bool) error

// tiling parses the request, generates and hands the result to write.
func (s *Server) tiling(write writeFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := parseRequest(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res, err := s.gen.Generate(c.Request.Context(), req)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.Header("X-Tiling-ID", res.ID)
		c.Header("X-Tiling-Depth", strconv.Itoa(res.Depth))
		if err := write(c, res, c.Query("fullscreen") == "1"); err != nil {
			s.log.Error("write failed", "id", c.GetString("requestID"), "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, generator.ErrDepthTooLarge),
		errors.Is(err, kdtile.ErrInvalidDepth),
		errors.Is(err, kdtile.ErrInvalidRegion):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func parseRequest(c *gin.Context) (generator.Request, error) {
	var req generator.Request
	if c.Query("random") == "1" {
		req.Random = true
		seed, err := queryUint(c, "seed", uint64(time.Now().UnixNano()))
		if err != nil {
			return req, err
		}
		req.Seed = seed
		return req, nil
	}

	if _, ok := c.GetQuery("length"); ok {
		var r kdtile.Rect
		var err error
		if r.X, err = queryFloat(c, "x"); err != nil {
			return req, err
		}
		if r.Y, err = queryFloat(c, "y"); err != nil {
			return req, err
		}
		if r.Length, err = queryFloat(c, "length"); err != nil {
			return req, err
		}
		req.Region = &r
		return req, nil
	}

	depth, err := strconv.Atoi(c.DefaultQuery("depth", "5"))
	if err != nil {
		return req, errBadQuery
	}
	req.Depth = depth
	return req, nil
}

func queryFloat(c *gin.Context, key string) (float64, error) {
	v, err := strconv.ParseFloat(c.Query(key), 64)
	if err != nil {
		return 0, errBadQuery
	}
	return v, nil
}

func queryUint(c *gin.Context, key string, def uint64) (uint64, error) {
	s, ok := c.GetQuery(key)
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errBadQuery
	}
	return v, nil
}

func (s *Server) scene(res *generator.Result, fullscreen bool) render.Scene {
	return render.Scene{
		Triangles:  res.Triangles,
		Size:       s.gen.Config().BaseLength,
		Region:     res.Region,
		Fullscreen: fullscreen,
	}
}

func (s *Server) svg(c *gin.Context, res *generator.Result, fullscreen bool) error {
	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, s.scene(res, fullscreen), s.gen.Config().Style); err != nil {
		return err
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
	return nil
}

func (s *Server) png(c *gin.Context, res *generator.Result, fullscreen bool) error {
	var buf bytes.Buffer
	if err := render.WritePNG(&buf, s.scene(res, fullscreen), s.gen.Config().Style); err != nil {
		return err
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
	return nil
}

func (s *Server) geojson(c *gin.Context, res *generator.Result, _ bool) error {
	var buf bytes.Buffer
	if err := export.WriteGeoJSON(&buf, res.Triangles, res.Region); err != nil {
		return err
	}
	c.Data(http.StatusOK, "application/geo+json", buf.Bytes())
	return nil
}
