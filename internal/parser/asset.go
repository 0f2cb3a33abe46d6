// Package parser decodes asset hierarchies handed over by the scanning and
// extraction layer.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/statwrap/core/internal/models"
	"gopkg.in/yaml.v3"
)

// ParseAsset decodes a JSON asset tree. Malformed handler metadata, such as a
// libraries field that is not an array, is reported as an error here so the
// builders only ever see well-formed shapes.
func ParseAsset(data []byte) (*models.Asset, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty asset data")
	}

	var asset models.Asset
	if err := json.Unmarshal(data, &asset); err != nil {
		return nil, fmt.Errorf("failed to unmarshal asset: %w", err)
	}

	return &asset, nil
}

// ParseAssetYAML decodes the same asset tree from YAML.
func ParseAssetYAML(data []byte) (*models.Asset, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty asset data")
	}

	var asset models.Asset
	if err := yaml.Unmarshal(data, &asset); err != nil {
		return nil, fmt.Errorf("failed to unmarshal asset: %w", err)
	}

	return &asset, nil
}
