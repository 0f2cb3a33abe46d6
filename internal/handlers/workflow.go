package handlers

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/statwrap/core/internal/models"
	"github.com/statwrap/core/internal/parser"
	"github.com/statwrap/core/internal/workflow"
)

// Workflow serves dependency graphs and trees for posted asset hierarchies.
type Workflow struct {
	builder *workflow.Builder
	cache   *resultCache
	logger  *zap.Logger
}

func NewWorkflow(builder *workflow.Builder, cacheSize int, logger *zap.Logger) (*Workflow, error) {
	cache, err := newResultCache(cacheSize)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{builder: builder, cache: cache, logger: logger}, nil
}

func (h *Workflow) GraphHandler(w http.ResponseWriter, r *http.Request) {
	body, asset, ok := h.readAsset(w, r)
	if !ok {
		return
	}

	key := cacheKey("graph", body)
	graph, hit := h.cache.get(key)
	if !hit {
		graph = h.builder.BuildGraph(asset)
		h.cache.add(key, graph)
	}

	result := graph.(*models.Graph)
	if r.URL.Query().Get("stats") == "true" {
		withStats := *result
		withStats.Stats = workflow.ComputeStats(result)
		result = &withStats
	}

	h.logger.Debug("built dependency graph",
		zap.String("uri", asset.URI),
		zap.Int("nodes", len(result.Nodes)),
		zap.Int("links", len(result.Links)),
		zap.Bool("cached", hit))

	writeJSON(w, r, http.StatusOK, result)
}

func (h *Workflow) TreeHandler(w http.ResponseWriter, r *http.Request) {
	body, asset, ok := h.readAsset(w, r)
	if !ok {
		return
	}

	key := cacheKey("tree", body)
	tree, hit := h.cache.get(key)
	if !hit {
		tree = h.builder.BuildTree(asset)
		h.cache.add(key, tree)
	}

	h.logger.Debug("built dependency tree", zap.String("uri", asset.URI), zap.Bool("cached", hit))

	writeJSON(w, r, http.StatusOK, tree)
}

func (h *Workflow) readAsset(w http.ResponseWriter, r *http.Request) ([]byte, *models.Asset, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, nil, false
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return nil, nil, false
	}

	defer r.Body.Close()

	asset, err := parser.ParseAsset(body)
	if err != nil {
		h.logger.Info("rejected asset payload", zap.Error(err))
		http.Error(w, "Invalid asset: "+err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}

	return body, asset, true
}
