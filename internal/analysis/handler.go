// Package analysis describes the per-language metadata handlers whose output
// the workflow builders consume. Extraction itself happens elsewhere; a
// Handler here only knows its stable id and how to find its block on an asset.
package analysis

import "github.com/statwrap/core/internal/models"

const (
	PythonHandlerID = "StatWrap.PythonHandler"
	RHandlerID      = "StatWrap.RHandler"
	SASHandlerID    = "StatWrap.SASHandler"
	StataHandlerID  = "StatWrap.StataHandler"
)

type Handler interface {
	ID() string
	// AssetType is the classification tag for assets this handler owns.
	AssetType() string
	// Metadata returns the handler's block on the asset, or nil if it reported nothing.
	Metadata(asset *models.Asset) *models.HandlerMetadata
}

// MetadataHandler looks its block up by id in the asset's metadata map.
type MetadataHandler struct {
	id        string
	assetType string
}

func NewMetadataHandler(id, assetType string) *MetadataHandler {
	return &MetadataHandler{id: id, assetType: assetType}
}

func (h *MetadataHandler) ID() string {
	return h.id
}

func (h *MetadataHandler) AssetType() string {
	return h.assetType
}

func (h *MetadataHandler) Metadata(asset *models.Asset) *models.HandlerMetadata {
	if asset == nil || asset.Metadata == nil {
		return nil
	}
	return asset.Metadata[h.id]
}

var (
	Python = NewMetadataHandler(PythonHandlerID, "python")
	R      = NewMetadataHandler(RHandlerID, "r")
	SAS    = NewMetadataHandler(SASHandlerID, "sas")
	Stata  = NewMetadataHandler(StataHandlerID, "stata")
)

// DefaultHandlers returns the built-in handlers in classification priority order.
func DefaultHandlers() []Handler {
	return []Handler{Python, R, SAS, Stata}
}
