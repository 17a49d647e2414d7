package server

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/resolve/internal/config"
	"github.com/agenthands/resolve/internal/core"
	"github.com/agenthands/resolve/internal/core/model"
	"github.com/agenthands/resolve/internal/driver"
)

type Server struct {
	Resolver *core.EntityResolver
	Port     string
}

// NewServer wires a server against a live Memgraph instance using the TOML
// config plus env overrides.
func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}

	// Env vars win over file config.
	if uri := os.Getenv("MEMGRAPH_URI"); uri != "" {
		cfg.Memgraph.URI = uri
	}
	if user := os.Getenv("MEMGRAPH_USER"); user != "" {
		cfg.Memgraph.User = user
	}
	if pass := os.Getenv("MEMGRAPH_PASSWORD"); pass != "" {
		cfg.Memgraph.Password = pass
	}

	store, err := driver.NewMemgraphStore(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
	if err != nil {
		log.Fatalf("Failed to connect to Memgraph: %v", err)
	}

	return NewWithStore(store, cfg)
}

// NewWithStore builds the server over any GraphStore, applying the config's
// thresholds and caps to the resolver.
func NewWithStore(store driver.GraphStore, cfg *config.Config) *Server {
	r := core.NewEntityResolver(store)
	r.AcceptThreshold = cfg.Resolution.AcceptThreshold
	r.AskThreshold = cfg.Resolution.AskThreshold
	r.Scorer.MinThreshold = cfg.Resolution.MinScore
	r.Scorer.MaxCandidates = cfg.Resolution.MaxCandidates
	r.Deduplicator.Threshold = cfg.Resolution.DedupeThreshold
	r.Provider.MaxDepth = cfg.Context.MaxDepth
	r.Provider.MaxNodes = cfg.Context.MaxNodes
	r.Provider.PageLimit = cfg.Context.PageLimit
	r.Provider.HintFloor = cfg.Context.HintFloor

	return &Server{Resolver: r, Port: cfg.Server.Port}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Healthz)
	r.POST("/resolve", s.ResolveMention)
	r.POST("/resolve/batch", s.ResolveBatch)
	r.POST("/context", s.Context)

	return r
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type ResolveRequest struct {
	Text        string `json:"text"`
	ElementType string `json:"element_type"`
}

func (s *Server) ResolveMention(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	elementType := model.ElementType(req.ElementType)
	if elementType == "" {
		elementType = model.NodeReference
	}

	resolution, err := s.Resolver.ResolveMention(c.Request.Context(), req.Text, elementType)
	if err != nil {
		if errors.Is(err, model.ErrEmptySurfaceForm) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to resolve mention: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve"})
		return
	}

	c.JSON(http.StatusOK, resolution)
}

type ResolveBatchRequest struct {
	Texts []string `json:"texts"`
}

func (s *Server) ResolveBatch(c *gin.Context) {
	var req ResolveBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	resolutions, err := s.Resolver.ResolveMentions(c.Request.Context(), req.Texts)
	if err != nil {
		log.Printf("Partial batch failure: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"resolutions": resolutions})
}

type ContextRequest struct {
	Text     string   `json:"text"`
	Names    []string `json:"names"`
	NodeID   string   `json:"node_id"`
	MaxDepth int      `json:"max_depth"`
	MaxNodes int      `json:"max_nodes"`
}

func (s *Server) Context(c *gin.Context) {
	var req ContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var (
		gctx *model.GraphContext
		err  error
	)
	switch {
	case req.NodeID != "":
		gctx, err = s.Resolver.Provider.ContextAroundNode(c.Request.Context(), req.NodeID, req.MaxDepth)
	case len(req.Names) > 0:
		gctx, err = s.Resolver.Provider.ContextForEntities(c.Request.Context(), req.Names, req.MaxDepth, req.MaxNodes)
	default:
		gctx, err = s.Resolver.Provider.ContextForQuery(c.Request.Context(), req.Text)
	}
	if err != nil {
		log.Printf("Failed to build context: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build context"})
		return
	}

	c.JSON(http.StatusOK, gctx)
}
