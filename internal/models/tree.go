package models

// TreeNode is one entry of the hierarchical view. Children stays nil when the
// asset has neither child assets nor dependencies.
type TreeNode struct {
	Name       string         `json:"name" yaml:"name"`
	Children   []*TreeNode    `json:"children" yaml:"children"`
	Attributes TreeAttributes `json:"attributes" yaml:"attributes"`
}

type TreeAttributes struct {
	AssetType string `json:"assetType" yaml:"assetType"`
}
