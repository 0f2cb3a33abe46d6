package models

type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Links []Link `json:"links" yaml:"links"`
	Stats *Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

type Node struct {
	ID        string `json:"id" yaml:"id"`
	AssetType string `json:"assetType" yaml:"assetType"`
}

type Link struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

type Stats struct {
	TotalNodes  int            `json:"total_nodes" yaml:"total_nodes"`
	TotalLinks  int            `json:"total_links" yaml:"total_links"`
	NodesByType map[string]int `json:"nodes_by_type,omitempty" yaml:"nodes_by_type,omitempty"`
}
