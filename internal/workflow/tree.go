package workflow

import "github.com/statwrap/core/internal/models"

// BuildTree mirrors the asset hierarchy, attaching each asset's distinct
// dependencies as terminal children. Returns nil for a nil asset.
func (b *Builder) BuildTree(asset *models.Asset) *models.TreeNode {
	if asset == nil {
		return nil
	}

	tree := &models.TreeNode{
		Name:       AssetName(asset),
		Attributes: models.TreeAttributes{AssetType: b.Classify(asset)},
	}

	if asset.Children != nil {
		tree.Children = make([]*models.TreeNode, 0, len(asset.Children))
		for i := range asset.Children {
			tree.Children = append(tree.Children, b.BuildTree(&asset.Children[i]))
		}
	}

	deps := b.Dependencies(asset)
	if len(deps) == 0 {
		return tree
	}
	if tree.Children == nil {
		tree.Children = []*models.TreeNode{}
	}

	seen := make(map[string]bool)
	for _, c := range tree.Children {
		if c.Attributes.AssetType == AssetTypeDependency {
			seen[c.Name] = true
		}
	}
	for _, dep := range deps {
		if seen[dep.ID] {
			continue
		}
		tree.Children = append(tree.Children, &models.TreeNode{
			Name:       dep.ID,
			Attributes: models.TreeAttributes{AssetType: AssetTypeDependency},
		})
		seen[dep.ID] = true
	}

	return tree
}

// AssetName is the display name used for an asset in the tree.
func AssetName(asset *models.Asset) string {
	if asset == nil {
		return ""
	}
	return asset.URI
}
