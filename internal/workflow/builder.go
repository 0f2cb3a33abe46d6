// Package workflow derives dependency graphs and trees from an asset
// hierarchy annotated by the analysis handlers.
package workflow

import (
	"github.com/statwrap/core/internal/analysis"
	"github.com/statwrap/core/internal/models"
)

const (
	AssetTypeGeneric    = "generic"
	AssetTypeDependency = "dependency"
)

type Options struct {
	// Handlers in classification priority order. Nil means analysis.DefaultHandlers().
	Handlers []analysis.Handler
	// RelativizeToRoot strips the root uri from every asset id in the graph.
	RelativizeToRoot bool
}

// Builder holds no per-call state and may be shared between goroutines.
type Builder struct {
	handlers         []analysis.Handler
	relativizeToRoot bool
}

func New(opts Options) *Builder {
	handlers := opts.Handlers
	if handlers == nil {
		handlers = analysis.DefaultHandlers()
	}
	return &Builder{
		handlers:         handlers,
		relativizeToRoot: opts.RelativizeToRoot,
	}
}

// Classify returns the asset type of the first handler that reported metadata
// for the asset, or "generic".
func (b *Builder) Classify(asset *models.Asset) string {
	if asset == nil {
		return AssetTypeGeneric
	}
	for _, h := range b.handlers {
		if h.Metadata(asset) != nil {
			return h.AssetType()
		}
	}
	return AssetTypeGeneric
}

// Dependencies flattens every handler's libraries, inputs and outputs into a
// single list ordered libraries ++ inputs ++ outputs.
func (b *Builder) Dependencies(asset *models.Asset) []models.Dependency {
	if asset == nil {
		return []models.Dependency{}
	}

	var libraries, inputs, outputs []models.DependencyEntry
	for _, h := range b.handlers {
		meta := h.Metadata(asset)
		if meta == nil {
			continue
		}
		libraries = append(libraries, meta.Libraries...)
		inputs = append(inputs, meta.Inputs...)
		outputs = append(outputs, meta.Outputs...)
	}

	deps := make([]models.Dependency, 0, len(libraries)+len(inputs)+len(outputs))
	deps = appendWithDirection(deps, libraries, models.DirectionIn)
	deps = appendWithDirection(deps, inputs, models.DirectionIn)
	deps = appendWithDirection(deps, outputs, models.DirectionOut)
	return deps
}

func appendWithDirection(deps []models.Dependency, entries []models.DependencyEntry, direction string) []models.Dependency {
	for _, e := range entries {
		deps = append(deps, models.Dependency{
			ID:        e.ID,
			Type:      e.Type,
			Direction: direction,
		})
	}
	return deps
}
