package router

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Module registers one feature's routes on the shared group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and mounts them on one route group.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

// NewRegistry mounts the group at prefix; an empty prefix serves from the root.
func NewRegistry(engine *gin.Engine, prefix string) *Registry {
	prefix = "/" + strings.Trim(prefix, "/")
	return &Registry{Engine: engine, API: engine.Group(prefix)}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
