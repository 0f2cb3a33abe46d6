package workflow

import (
	"strings"

	"github.com/statwrap/core/internal/models"
)

type assetDependencies struct {
	assetID      string
	assetType    string
	dependencies []models.Dependency
}

type linkKey struct {
	source string
	target string
}

// BuildGraph returns the deduplicated node/link graph for root and all of its
// descendants. Only assets with at least one dependency appear as nodes.
func (b *Builder) BuildGraph(root *models.Asset) *models.Graph {
	graph := &models.Graph{
		Nodes: []models.Node{},
		Links: []models.Link{},
	}

	if root == nil || root.URI == "" {
		return graph
	}

	rootURI := ""
	if b.relativizeToRoot {
		rootURI = root.URI
	}

	nodeMap := make(map[string]bool)
	linkMap := make(map[linkKey]bool)

	for _, entry := range b.collect(root, rootURI, nil) {
		if entry.assetID == "" || len(entry.dependencies) == 0 {
			continue
		}

		if !nodeMap[entry.assetID] {
			graph.Nodes = append(graph.Nodes, models.Node{ID: entry.assetID, AssetType: entry.assetType})
			nodeMap[entry.assetID] = true
		}

		for _, dep := range entry.dependencies {
			if !nodeMap[dep.ID] {
				assetType := dep.Type
				if assetType == "" {
					assetType = AssetTypeDependency
				}
				graph.Nodes = append(graph.Nodes, models.Node{ID: dep.ID, AssetType: assetType})
				nodeMap[dep.ID] = true
			}

			key := linkKey{source: entry.assetID, target: dep.ID}
			if dep.Direction == models.DirectionIn {
				key = linkKey{source: dep.ID, target: entry.assetID}
			}
			if linkMap[key] {
				continue
			}
			graph.Links = append(graph.Links, models.Link{Source: key.source, Target: key.target})
			linkMap[key] = true
		}
	}

	return graph
}

// collect flattens the hierarchy in pre-order.
func (b *Builder) collect(asset *models.Asset, rootURI string, acc []assetDependencies) []assetDependencies {
	acc = append(acc, assetDependencies{
		assetID:      assetID(asset.URI, rootURI),
		assetType:    b.Classify(asset),
		dependencies: b.Dependencies(asset),
	})
	for i := range asset.Children {
		acc = b.collect(&asset.Children[i], rootURI, acc)
	}
	return acc
}

func assetID(uri, rootURI string) string {
	if rootURI == "" {
		return uri
	}
	return strings.TrimLeft(strings.TrimPrefix(uri, rootURI), `/\`)
}

// ComputeStats summarizes a built graph.
func ComputeStats(graph *models.Graph) *models.Stats {
	stats := &models.Stats{
		NodesByType: make(map[string]int),
	}
	if graph == nil {
		return stats
	}
	stats.TotalNodes = len(graph.Nodes)
	stats.TotalLinks = len(graph.Links)
	for _, n := range graph.Nodes {
		stats.NodesByType[n.AssetType]++
	}
	return stats
}
