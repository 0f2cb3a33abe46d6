package workflow

import (
	"github.com/statwrap/core/internal/analysis"
	"github.com/statwrap/core/internal/models"
)

func entries(ids ...string) []models.DependencyEntry {
	out := make([]models.DependencyEntry, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.DependencyEntry{ID: id})
	}
	return out
}

func pythonAsset(uri string, meta models.HandlerMetadata) models.Asset {
	return models.Asset{
		URI:      uri,
		Metadata: map[string]*models.HandlerMetadata{analysis.PythonHandlerID: &meta},
	}
}

// projectTree is /proj containing a single python file importing numpy.
func projectTree() *models.Asset {
	return &models.Asset{
		URI: "/proj",
		Children: []models.Asset{
			pythonAsset("/proj/a.py", models.HandlerMetadata{Libraries: entries("numpy")}),
		},
	}
}
