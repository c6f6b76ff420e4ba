// Package httpapi exposes the command surface of spec §6 over HTTP using
// gin, the way the teacher's server exposes its own domain commands: a
// router builder, zap request logging, dev-gated CORS, and a request-id
// middleware, with every handler routed through a single executor.Executor
// so concurrent HTTP requests never interleave keyspace mutations (spec
// §5).
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vpol/redis/internal/command"
	"github.com/vpol/redis/internal/config"
	"github.com/vpol/redis/internal/events"
	"github.com/vpol/redis/internal/executor"
	"github.com/vpol/redis/internal/keyspace"
)

// Server wires the command surface to HTTP transport.
type Server struct {
	ks   *keyspace.Keyspace
	cfg  *config.Config
	sink events.Sink
	exec *executor.Executor
	log  *zap.Logger

	Router *gin.Engine
}

// New builds a Server and its gin router. Callers still own starting the
// HTTP listener (e.g. r.Router.Run(addr)) and closing exec when done.
func New(ks *keyspace.Keyspace, cfg *config.Config, sink events.Sink, exec *executor.Executor, log *zap.Logger) *Server {
	s := &Server{ks: ks, cfg: cfg, sink: sink, exec: exec, log: log.Named("httpapi")}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"127.0.0.1"})

	r.Use(gin.Recovery())
	if os.Getenv("ENV") == "dev" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(requestID())
	r.Use(zapLogger(log))

	s.Router = r
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.Router
	r.GET("/api/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })

	sets := r.Group("/api/sets/:name")
	sets.POST("/members", s.handleAdd)
	sets.DELETE("/members", s.handleRemove)
	sets.GET("/members/:value", s.handleIsMember)
	sets.POST("/move", s.handleMove)
	sets.GET("/card", s.handleCardinality)
	sets.POST("/pop", s.handlePop)
	sets.GET("/rand", s.handleRand)
	sets.GET("/scan", s.handleScan)
	sets.POST("/unionstore", s.handleUnionStore)
	sets.POST("/interstore", s.handleInterStore)
	sets.POST("/diffstore", s.handleDiffStore)
	sets.POST("/randstore", s.handleRandStore)

	r.POST("/api/sets/_union", s.handleUnion)
	r.POST("/api/sets/_inter", s.handleInter)
	r.POST("/api/sets/_diff", s.handleDiff)
}

type valuesRequest struct {
	Values []string `json:"values" binding:"required,min=1"`
}

type namesRequest struct {
	Names []string `json:"names" binding:"required,min=1"`
}

type moveRequest struct {
	Dst   string `json:"dst" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type randStoreRequest struct {
	Name  string `json:"name" binding:"required"`
	Count int    `json:"count"`
}

func toBytes(values []string) [][]byte {
	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = []byte(v)
	}
	return out
}

func toStrings(values [][]byte) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// commandResult carries a generic command's (value, error) pair through
// executor.Submit, whose return type can't itself be an error.
type commandResult[T any] struct {
	value T
	err   error
}

func submit[T any](c *gin.Context, s *Server, fn func() (T, error)) (T, error) {
	ctx := c.Request.Context()
	r, err := executor.Submit(ctx, s.exec, func() commandResult[T] {
		v, err := fn()
		return commandResult[T]{value: v, err: err}
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return r.value, r.err
}

// writeError maps a command error to an HTTP status, attaching it to the
// gin context for zapLogger to pick up.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Header("X-Request-ID", getRequestID(c))
	switch {
	case errors.Is(err, command.ErrWrongKind):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, command.ErrRange), errors.Is(err, command.ErrSyntax):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) handleAdd(c *gin.Context) {
	name := c.Param("name")
	var req valuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	added, err := submit(c, s, func() (int, error) {
		return command.Add(s.ks, s.cfg, s.sink, name, toBytes(req.Values))
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

func (s *Server) handleRemove(c *gin.Context) {
	name := c.Param("name")
	var req valuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	removed, err := submit(c, s, func() (int, error) {
		return command.Remove(s.ks, s.sink, name, toBytes(req.Values))
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (s *Server) handleIsMember(c *gin.Context) {
	name := c.Param("name")
	value := c.Param("value")
	isMember, err := submit(c, s, func() (bool, error) {
		return command.IsMember(s.ks, name, []byte(value))
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isMember": isMember})
}

func (s *Server) handleMove(c *gin.Context) {
	src := c.Param("name")
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	moved, err := submit(c, s, func() (int, error) {
		return command.Move(s.ks, s.cfg, s.sink, src, req.Dst, []byte(req.Value))
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": moved})
}

func (s *Server) handleCardinality(c *gin.Context) {
	name := c.Param("name")
	n, err := submit(c, s, func() (int, error) { return command.Cardinality(s.ks, name) })
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cardinality": n})
}

func parseCount(c *gin.Context) (count int, has bool, ok bool) {
	raw := c.Query("count")
	if raw == "" {
		return 0, false, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, false
	}
	return n, true, true
}

func (s *Server) handlePop(c *gin.Context) {
	name := c.Param("name")
	count, has, ok := parseCount(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count"})
		return
	}
	popped, err := submit(c, s, func() ([][]byte, error) {
		return command.Pop(s.ks, s.cfg, s.sink, name, has, count)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"popped": toStrings(popped)})
}

func (s *Server) handleRand(c *gin.Context) {
	name := c.Param("name")
	count, has, ok := parseCount(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count"})
		return
	}
	sampled, err := submit(c, s, func() ([][]byte, error) {
		return command.Rand(s.ks, s.cfg, name, has, count)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": toStrings(sampled)})
}

func (s *Server) handleScan(c *gin.Context) {
	name := c.Param("name")
	cursor, err := strconv.Atoi(c.DefaultQuery("cursor", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cursor"})
		return
	}
	type scanReply struct {
		next  int
		batch [][]byte
	}
	reply, err := submit(c, s, func() (scanReply, error) {
		next, batch, err := command.Scan(s.ks, name, cursor)
		return scanReply{next: next, batch: batch}, err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cursor": reply.next, "members": toStrings(reply.batch)})
}

func (s *Server) handleUnion(c *gin.Context) {
	var req namesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	members, err := submit(c, s, func() ([][]byte, error) { return command.Union(s.ks, s.cfg, req.Names) })
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": toStrings(members)})
}

func (s *Server) handleInter(c *gin.Context) {
	var req namesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	members, err := submit(c, s, func() ([][]byte, error) { return command.Intersection(s.ks, s.cfg, req.Names) })
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": toStrings(members)})
}

func (s *Server) handleDiff(c *gin.Context) {
	var req namesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	members, err := submit(c, s, func() ([][]byte, error) { return command.Difference(s.ks, s.cfg, req.Names) })
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": toStrings(members)})
}

func (s *Server) handleUnionStore(c *gin.Context) {
	dst := c.Param("name")
	var req namesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	n, err := submit(c, s, func() (int, error) {
		return command.UnionStore(s.ks, s.cfg, s.sink, dst, req.Names)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cardinality": n})
}

func (s *Server) handleInterStore(c *gin.Context) {
	dst := c.Param("name")
	var req namesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	n, err := submit(c, s, func() (int, error) {
		return command.InterStore(s.ks, s.cfg, s.sink, dst, req.Names)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cardinality": n})
}

func (s *Server) handleDiffStore(c *gin.Context) {
	dst := c.Param("name")
	var req namesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	n, err := submit(c, s, func() (int, error) {
		return command.DiffStore(s.ks, s.cfg, s.sink, dst, req.Names)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cardinality": n})
}

func (s *Server) handleRandStore(c *gin.Context) {
	dst := c.Param("name")
	var req randStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	n, err := submit(c, s, func() (int, error) {
		return command.RandStore(s.ks, s.cfg, s.sink, dst, req.Name, req.Count)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cardinality": n})
}
