package rpc

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Phase-Platform/phase/internal/apperr"
	"github.com/Phase-Platform/phase/internal/crud"
	"github.com/Phase-Platform/phase/internal/db"
)

// registerRoutes sets up every route on the gin router.
func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(s.metrics.handler()))

	api := router.Group("/rpc", s.withTimeout(), s.authenticate())
	api.GET("/:procedure", s.handleProcedure)
	api.POST("/:procedure", s.handleProcedure)
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := db.Ping(ctx, s.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleProcedure resolves "<entity>.<op>" and runs it.
func (s *Server) handleProcedure(c *gin.Context) {
	start := time.Now()
	name := c.Param("procedure")
	label := "unknown"
	code := "OK"
	defer func() {
		s.metrics.observe(label, code, time.Since(start))
	}()

	entity, op, _ := strings.Cut(name, ".")
	proc, known := procedures[op]
	res, err := s.reg.Resource(entity)
	if !known || err != nil {
		code = string(apperr.CodeNotFound)
		writeError(c, http.StatusNotFound, code, "no such procedure: "+name, nil)
		return
	}
	label = name

	if proc.mutation && c.Request.Method != http.MethodPost {
		code = codeMethodNotSupported
		c.Header("Allow", http.MethodPost)
		writeError(c, http.StatusMethodNotAllowed, code, name+" is a mutation and must be called with POST", nil)
		return
	}

	input, err := readInput(c)
	if err != nil {
		code = codeBadRequest
		writeError(c, http.StatusBadRequest, code, err.Error(), nil)
		return
	}

	ctx := c.Request.Context()
	if proc.mutation {
		if err := s.requireActor(c); err != nil {
			code = s.fail(c, name, err)
			return
		}
	}

	data, err := proc.run(ctx, res, input)
	if err != nil {
		code = s.fail(c, name, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": gin.H{"data": data}})
}

// procedure is one operation of an entity namespace.
type procedure struct {
	mutation bool
	run      func(ctx context.Context, res crud.Resource, input []byte) (any, error)
}

var procedures = map[string]procedure{
	"getAll": {
		run: func(ctx context.Context, res crud.Resource, _ []byte) (any, error) {
			return res.List(ctx)
		},
	},
	"getById": {
		run: func(ctx context.Context, res crud.Resource, input []byte) (any, error) {
			id, err := decodeID(input)
			if err != nil {
				return nil, err
			}
			return res.Get(ctx, id)
		},
	},
	"create": {
		mutation: true,
		run: func(ctx context.Context, res crud.Resource, input []byte) (any, error) {
			obj, err := decodeObject(input)
			if err != nil {
				return nil, err
			}
			return res.Create(ctx, obj)
		},
	},
	"update": {
		mutation: true,
		run: func(ctx context.Context, res crud.Resource, input []byte) (any, error) {
			in, err := decodeUpdate(input)
			if err != nil {
				return nil, err
			}
			return res.Update(ctx, in.ID, in.Data)
		},
	},
	"delete": {
		mutation: true,
		run: func(ctx context.Context, res crud.Resource, input []byte) (any, error) {
			id, err := decodeID(input)
			if err != nil {
				return nil, err
			}
			return nil, res.Delete(ctx, id)
		},
	},
}
