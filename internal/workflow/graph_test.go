package workflow

import (
	"fmt"
	"sync"
	"testing"

	"github.com/statwrap/core/internal/analysis"
	"github.com/statwrap/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraph(t *testing.T) {
	b := New(Options{})

	t.Run("nil root returns empty graph", func(t *testing.T) {
		graph := b.BuildGraph(nil)

		require.NotNil(t, graph)
		assert.NotNil(t, graph.Nodes)
		assert.NotNil(t, graph.Links)
		assert.Empty(t, graph.Nodes)
		assert.Empty(t, graph.Links)
	})

	t.Run("root without uri returns empty graph", func(t *testing.T) {
		asset := pythonAsset("", models.HandlerMetadata{Libraries: entries("numpy")})

		graph := b.BuildGraph(&asset)

		assert.Empty(t, graph.Nodes)
		assert.Empty(t, graph.Links)
	})

	t.Run("library flows into the asset", func(t *testing.T) {
		graph := b.BuildGraph(projectTree())

		assert.Equal(t, []models.Node{
			{ID: "/proj/a.py", AssetType: "python"},
			{ID: "numpy", AssetType: "dependency"},
		}, graph.Nodes)
		assert.Equal(t, []models.Link{
			{Source: "numpy", Target: "/proj/a.py"},
		}, graph.Links)
	})

	t.Run("output flows out of the asset", func(t *testing.T) {
		asset := pythonAsset("/a.py", models.HandlerMetadata{Outputs: entries("out.csv")})

		graph := b.BuildGraph(&asset)

		assert.Equal(t, []models.Link{{Source: "/a.py", Target: "out.csv"}}, graph.Links)
	})

	t.Run("dependency node takes reported type", func(t *testing.T) {
		asset := pythonAsset("/a.py", models.HandlerMetadata{
			Inputs: []models.DependencyEntry{{ID: "/b.py", Type: "python"}},
		})

		graph := b.BuildGraph(&asset)

		assert.Contains(t, graph.Nodes, models.Node{ID: "/b.py", AssetType: "python"})
	})

	t.Run("same id as input and output yields two links and one node", func(t *testing.T) {
		asset := pythonAsset("/a.py", models.HandlerMetadata{
			Inputs:  entries("data.csv"),
			Outputs: entries("data.csv"),
		})

		graph := b.BuildGraph(&asset)

		assert.Len(t, graph.Nodes, 2)
		assert.ElementsMatch(t, []models.Link{
			{Source: "data.csv", Target: "/a.py"},
			{Source: "/a.py", Target: "data.csv"},
		}, graph.Links)
	})

	t.Run("asset with deps and empty children", func(t *testing.T) {
		asset := pythonAsset("/a.py", models.HandlerMetadata{
			Libraries: entries("numpy", "pandas", "numpy"),
			Outputs:   entries("out.csv"),
		})
		asset.Children = []models.Asset{}

		graph := b.BuildGraph(&asset)

		assert.Len(t, graph.Nodes, 4)
		assert.Len(t, graph.Links, 3)
	})

	t.Run("shared dependency across assets has one node", func(t *testing.T) {
		root := &models.Asset{
			URI: "/proj",
			Children: []models.Asset{
				pythonAsset("/proj/a.py", models.HandlerMetadata{Libraries: entries("numpy")}),
				pythonAsset("/proj/b.py", models.HandlerMetadata{Libraries: entries("numpy")}),
			},
		}

		graph := b.BuildGraph(root)

		assert.Len(t, graph.Nodes, 3)
		assert.ElementsMatch(t, []models.Link{
			{Source: "numpy", Target: "/proj/a.py"},
			{Source: "numpy", Target: "/proj/b.py"},
		}, graph.Links)
	})

	t.Run("asset referenced before it is visited keeps first type", func(t *testing.T) {
		root := &models.Asset{
			URI: "/proj",
			Children: []models.Asset{
				pythonAsset("/proj/a.py", models.HandlerMetadata{Outputs: entries("/proj/b.py")}),
				pythonAsset("/proj/b.py", models.HandlerMetadata{Libraries: entries("numpy")}),
			},
		}

		graph := b.BuildGraph(root)

		assertUniqueGraph(t, graph)
		assert.Contains(t, graph.Nodes, models.Node{ID: "/proj/b.py", AssetType: "dependency"})
		assert.Contains(t, graph.Links, models.Link{Source: "/proj/a.py", Target: "/proj/b.py"})
		assert.Contains(t, graph.Links, models.Link{Source: "numpy", Target: "/proj/b.py"})
	})

	t.Run("deep hierarchy is traversed", func(t *testing.T) {
		leaf := models.Asset{
			URI:      "/p/x/y/z.do",
			Metadata: map[string]*models.HandlerMetadata{analysis.StataHandlerID: {Inputs: entries("auto.dta")}},
		}
		root := &models.Asset{URI: "/p", Children: []models.Asset{
			{URI: "/p/x", Children: []models.Asset{
				{URI: "/p/x/y", Children: []models.Asset{leaf}},
			}},
		}}

		graph := b.BuildGraph(root)

		assert.Equal(t, []models.Node{
			{ID: "/p/x/y/z.do", AssetType: "stata"},
			{ID: "auto.dta", AssetType: "dependency"},
		}, graph.Nodes)
	})

	t.Run("building twice yields equal graphs", func(t *testing.T) {
		root := largeTree(5, 4)

		first := b.BuildGraph(root)
		second := b.BuildGraph(root)

		assert.ElementsMatch(t, first.Nodes, second.Nodes)
		assert.ElementsMatch(t, first.Links, second.Links)
		assertUniqueGraph(t, first)
	})

	t.Run("concurrent builds are independent", func(t *testing.T) {
		root := largeTree(4, 3)
		expected := b.BuildGraph(root)

		var wg sync.WaitGroup
		results := make([]*models.Graph, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = b.BuildGraph(root)
			}(i)
		}
		wg.Wait()

		for _, g := range results {
			assert.Equal(t, expected, g)
		}
	})
}

func TestBuildGraphRelativized(t *testing.T) {
	b := New(Options{RelativizeToRoot: true})

	t.Run("strips root uri and separators", func(t *testing.T) {
		graph := b.BuildGraph(projectTree())

		assert.Equal(t, []models.Node{
			{ID: "a.py", AssetType: "python"},
			{ID: "numpy", AssetType: "dependency"},
		}, graph.Nodes)
		assert.Equal(t, []models.Link{{Source: "numpy", Target: "a.py"}}, graph.Links)
	})

	t.Run("windows separators are trimmed", func(t *testing.T) {
		root := &models.Asset{
			URI: `C:\proj`,
			Children: []models.Asset{
				pythonAsset(`C:\proj\a.py`, models.HandlerMetadata{Libraries: entries("numpy")}),
			},
		}

		graph := b.BuildGraph(root)

		assert.Contains(t, graph.Nodes, models.Node{ID: "a.py", AssetType: "python"})
	})

	t.Run("root itself is not a node", func(t *testing.T) {
		root := pythonAsset("/proj", models.HandlerMetadata{Libraries: entries("numpy")})

		graph := b.BuildGraph(&root)

		assert.NotContains(t, graph.Nodes, models.Node{ID: "", AssetType: "python"})
		assert.Empty(t, graph.Links)
	})
}

func TestComputeStats(t *testing.T) {
	t.Run("nil graph", func(t *testing.T) {
		stats := ComputeStats(nil)

		assert.Equal(t, 0, stats.TotalNodes)
		assert.NotNil(t, stats.NodesByType)
	})

	t.Run("counts nodes by type", func(t *testing.T) {
		stats := ComputeStats(New(Options{}).BuildGraph(projectTree()))

		assert.Equal(t, 2, stats.TotalNodes)
		assert.Equal(t, 1, stats.TotalLinks)
		assert.Equal(t, 1, stats.NodesByType["python"])
		assert.Equal(t, 1, stats.NodesByType["dependency"])
	})
}

func assertUniqueGraph(t *testing.T, graph *models.Graph) {
	t.Helper()

	nodes := make(map[string]bool)
	for _, n := range graph.Nodes {
		assert.False(t, nodes[n.ID], "duplicate node %s", n.ID)
		nodes[n.ID] = true
	}
	links := make(map[models.Link]bool)
	for _, l := range graph.Links {
		assert.False(t, links[l], "duplicate link %s -> %s", l.Source, l.Target)
		links[l] = true
	}
}

func largeTree(depth, width int) *models.Asset {
	var build func(prefix string, level int) models.Asset
	build = func(prefix string, level int) models.Asset {
		asset := pythonAsset(prefix, models.HandlerMetadata{
			Libraries: entries("numpy", fmt.Sprintf("lib%d", level)),
			Outputs:   entries(fmt.Sprintf("%s.out", prefix)),
		})
		if level == depth {
			return asset
		}
		for i := 0; i < width; i++ {
			asset.Children = append(asset.Children, build(fmt.Sprintf("%s/%d", prefix, i), level+1))
		}
		return asset
	}
	root := build("/root", 0)
	return &root
}
