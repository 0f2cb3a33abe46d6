package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/statwrap/core/internal/config"
	"github.com/statwrap/core/internal/logging"
	"github.com/statwrap/core/internal/models"
	"github.com/statwrap/core/internal/parser"
	"github.com/statwrap/core/internal/projectlist"
	"github.com/statwrap/core/internal/workflow"
)

var (
	// Set at build time.
	Version   = "dev"
	GitCommit = "unknown"
)

type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "statwrap",
		Short:         "Dependency graphs and trees for StatWrap research projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default ./statwrap.yaml)")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newGraphCommand(opts))
	rootCmd.AddCommand(newTreeCommand(opts))
	rootCmd.AddCommand(newProjectsCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
}

func runServe(opts *rootOptions) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	router, err := newRouter(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	logger.Info("server starting",
		zap.String("addr", cfg.Addr()),
		zap.Bool("relativize_to_root", cfg.Workflow.RelativizeToRoot),
		zap.Int("cache_size", cfg.Cache.Size))
	return http.ListenAndServe(cfg.Addr(), router)
}

type buildOptions struct {
	format     string
	relativize bool
	stats      bool
}

func newGraphCommand(opts *rootOptions) *cobra.Command {
	bo := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "graph <asset-file>",
		Short: "Print the dependency graph of an asset tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, asset, err := prepareBuild(cmd, opts, bo, args[0])
			if err != nil {
				return err
			}
			graph := builder.BuildGraph(asset)
			if bo.stats {
				graph.Stats = workflow.ComputeStats(graph)
			}
			return render(cmd.OutOrStdout(), bo.format, graph)
		},
	}
	addBuildFlags(cmd, bo)
	cmd.Flags().BoolVar(&bo.stats, "stats", false, "include node and link counts")
	return cmd
}

func newTreeCommand(opts *rootOptions) *cobra.Command {
	bo := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "tree <asset-file>",
		Short: "Print the dependency tree of an asset tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, asset, err := prepareBuild(cmd, opts, bo, args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), bo.format, builder.BuildTree(asset))
		},
	}
	addBuildFlags(cmd, bo)
	return cmd
}

func addBuildFlags(cmd *cobra.Command, bo *buildOptions) {
	cmd.Flags().StringVarP(&bo.format, "format", "f", "json", "output format (json|yaml)")
	cmd.Flags().BoolVar(&bo.relativize, "relativize", false, "strip the root uri from asset ids")
}

// prepareBuild merges the --relativize flag over the configured default and
// reads the asset file, choosing the decoder by extension.
func prepareBuild(cmd *cobra.Command, opts *rootOptions, bo *buildOptions, path string) (*workflow.Builder, *models.Asset, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, nil, err
	}
	relativize := cfg.Workflow.RelativizeToRoot
	if cmd.Flags().Changed("relativize") {
		relativize = bo.relativize
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read asset file: %w", err)
	}

	var asset *models.Asset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		asset, err = parser.ParseAssetYAML(data)
	default:
		asset, err = parser.ParseAsset(data)
	}
	if err != nil {
		return nil, nil, err
	}

	return workflow.New(workflow.Options{RelativizeToRoot: relativize}), asset, nil
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func newProjectsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage the project list",
	}

	openStore := func() (*projectlist.Store, error) {
		cfg, err := config.Load(opts.configFile)
		if err != nil {
			return nil, err
		}
		return projectlist.New(cfg.Projects.File), nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			projects, err := store.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range projects {
				marker := " "
				if p.Favorite {
					marker = color.YellowString("*")
				}
				fmt.Fprintf(out, "%s %s  %s  %s\n", marker, p.ID, color.CyanString(p.Name), p.Path)
			}
			return nil
		},
	})

	var name string
	addCmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Add a project to the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			project := &models.Project{ID: projectlist.NewID(), Name: name, Path: args[0]}
			added, err := store.Append(project)
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("Project already listed: %s", args[0]))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Added project %s", project.ID))
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle a project's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			favorite, err := store.ToggleFavorite(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s favorite=%t\n", args[0], favorite)
			return nil
		},
	})

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "statwrap %s (%s) %s\n", Version, GitCommit, runtime.Version())
		},
	}
}
