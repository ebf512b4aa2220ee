// Package main is the oboeru CLI entry point: one verb per invocation,
// JSON result on stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/oboeru/internal/chunker"
	"github.com/hyperjump/oboeru/internal/cli"
	"github.com/hyperjump/oboeru/internal/config"
	"github.com/hyperjump/oboeru/internal/embedding"
	"github.com/hyperjump/oboeru/internal/engine"
	"github.com/hyperjump/oboeru/internal/extract"
	"github.com/hyperjump/oboeru/internal/vector"
	"github.com/hyperjump/oboeru/internal/watcher"
	"github.com/hyperjump/oboeru/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/oboeru/config.yaml"

func main() {
	if len(os.Args) < 2 {
		cli.WriteError(os.Stdout, "Invalid command")
		os.Exit(1)
	}
	var err error
	switch os.Args[1] {
	case "add":
		err = runAdd(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "delete":
		err = runDelete(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	case "context":
		err = runContext(os.Args[2:])
	case "watch":
		err = runWatch(os.Args[2:])
	case "status":
		err = runStatus(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("oboeru version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		cli.WriteError(os.Stdout, "Invalid command")
		os.Exit(1)
	}
	if err != nil {
		// Nothing crosses this boundary as an unstructured crash.
		cli.WriteError(os.Stdout, err.Error())
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`oboeru - document retrieval for local chat grounding

Usage:
  oboeru add [-config path] [-meta key=value ...] <file>
  oboeru list [-config path]
  oboeru delete [-config path] <file_name>
  oboeru search [-config path] [-n N] <query...>
  oboeru context [-config path] [-n N] <query...>
  oboeru watch [-config path] [dir ...]
  oboeru status [-config path]
  oboeru version

All commands print a JSON result on stdout. Logs go to stderr.
`)
}

// loadConfig loads config from path. When path is the default, a config.yaml
// in the current directory takes precedence (for development), and a missing
// default file falls back to built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, err := os.Stat(fallback); err == nil {
				return config.Load(fallback)
			}
		}
		if _, err := os.Stat(path); err != nil {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// components bundles everything a command needs, with a single Close.
type components struct {
	Engine   *engine.Engine
	Store    vector.Store
	Embedder embedding.Embedder
	Logger   *zap.Logger
}

func (c *components) Close() {
	_ = c.Embedder.Close()
	_ = c.Store.Close()
	_ = c.Logger.Sync()
}

func initComponents(cfg *config.Config, debug bool) (*components, error) {
	logger, err := utils.NewLogger(cfg.Debug || debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	var embedder embedding.Embedder
	switch cfg.Embedding.Provider {
	case "mock":
		embedder = embedding.NewMockEmbedder(0)
	case "ollama", "":
		embedder = embedding.NewOllamaEmbedder(
			cfg.Embedding.BaseURL,
			cfg.Embedding.Model,
			embedding.WithCache(cfg.Embedding.CacheSize),
			embedding.WithTimeout(time.Duration(cfg.Embedding.TimeoutSeconds)*time.Second),
		)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Embedding.Provider)
	}

	store, err := vector.NewStore(vector.StoreType(cfg.Storage.Type), cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open vector store: %w", err)
	}

	eng := engine.New(
		extract.NewExtractor(),
		chunker.New(cfg.Search.ChunkSize, cfg.Search.ChunkOverlap),
		embedder,
		store,
		engine.WithLogger(logger),
		engine.WithDefaultResults(cfg.Search.DefaultResults),
	)
	return &components{Engine: eng, Store: store, Embedder: embedder, Logger: logger}, nil
}

// metaFlags collects repeated -meta key=value pairs.
type metaFlags map[string]interface{}

func (m metaFlags) String() string { return "" }

func (m metaFlags) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	if !ok || key == "" {
		return fmt.Errorf("metadata must be key=value, got %q", v)
	}
	m[key] = value
	return nil
}

func runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	meta := metaFlags{}
	fs.Var(meta, "meta", "document metadata as key=value (repeatable)")
	_ = fs.Parse(reorderArgs(args))
	if fs.NArg() < 1 {
		cli.WriteError(os.Stdout, "Invalid command")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	c, err := initComponents(cfg, *debug)
	if err != nil {
		return err
	}
	defer c.Close()

	var metadata map[string]interface{}
	if len(meta) > 0 {
		metadata = meta
	}
	result := c.Engine.AddDocument(context.Background(), fs.Arg(0), metadata)
	return cli.WriteJSON(os.Stdout, result)
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	c, err := initComponents(cfg, *debug)
	if err != nil {
		return err
	}
	defer c.Close()

	return cli.WriteJSON(os.Stdout, c.Engine.ListDocuments(context.Background()))
}

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(reorderArgs(args))
	if fs.NArg() < 1 {
		cli.WriteError(os.Stdout, "Invalid command")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	c, err := initComponents(cfg, *debug)
	if err != nil {
		return err
	}
	defer c.Close()

	result := c.Engine.DeleteDocument(context.Background(), fs.Arg(0))
	return cli.WriteJSON(os.Stdout, result)
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	n := fs.Int("n", 0, "number of results (0 = config default)")
	_ = fs.Parse(reorderArgs(args))
	if fs.NArg() < 1 {
		cli.WriteError(os.Stdout, "Invalid command")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	c, err := initComponents(cfg, *debug)
	if err != nil {
		return err
	}
	defer c.Close()

	results := c.Engine.Search(context.Background(), buildQuery(fs.Args()), *n)
	return cli.WriteJSON(os.Stdout, results)
}

func runContext(args []string) error {
	fs := flag.NewFlagSet("context", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	n := fs.Int("n", 0, "number of results (0 = config default)")
	_ = fs.Parse(reorderArgs(args))
	if fs.NArg() < 1 {
		cli.WriteError(os.Stdout, "Invalid command")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	c, err := initComponents(cfg, *debug)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := c.Engine.ContextForQuery(context.Background(), buildQuery(fs.Args()), *n)
	return cli.WriteJSON(os.Stdout, map[string]string{"context": ctx})
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(reorderArgs(args))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	dirs := fs.Args()
	if len(dirs) == 0 {
		dirs = cfg.Watch.Directories
	}
	if len(dirs) == 0 {
		cli.WriteError(os.Stdout, "Invalid command")
		os.Exit(1)
	}

	c, err := initComponents(cfg, *debug)
	if err != nil {
		return err
	}
	defer c.Close()
	logger := c.Logger

	w := watcher.New(
		dirs,
		cfg.Watch.Extensions,
		cfg.Watch.RecursiveOrDefault(),
		func(path string) {
			result := c.Engine.AddDocument(context.Background(), path, nil)
			if !result.Success {
				logger.Warn("watch add failed", zap.String("path", path), zap.String("error", result.Error))
				return
			}
			logger.Info("watch added document", zap.String("path", path), zap.Int("chunks", result.Chunks))
		},
		func(path string) {
			result := c.Engine.DeleteDocument(context.Background(), filepath.Base(path))
			if !result.Success {
				logger.Warn("watch delete failed", zap.String("path", path), zap.String("error", result.Error))
				return
			}
			logger.Info("watch deleted document", zap.String("path", path))
		},
		watcher.WithLogger(logger),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()
	w.SyncExistingFiles()
	logger.Info("watching", zap.Strings("directories", dirs))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("shutting down")
	return nil
}

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	c, err := initComponents(cfg, *debug)
	if err != nil {
		return err
	}
	defer c.Close()

	docs, chunks, err := c.Engine.Counts(context.Background())
	if err != nil {
		return err
	}
	return cli.WriteJSON(os.Stdout, map[string]interface{}{
		"documents":     docs,
		"chunks":        chunks,
		"store_type":    cfg.Storage.Type,
		"database_path": cfg.Storage.DatabasePath,
	})
}

// buildQuery joins all positional args with spaces so multi-word queries work
// the same with or without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// reorderArgs moves flags (and their values) that appear after positional
// arguments to the front so flag.Parse sees them. Go's flag package stops at
// the first non-flag argument, so "oboeru search my query -n 5" would
// otherwise leave -n unparsed.
func reorderArgs(args []string) []string {
	for i, a := range args {
		if strings.HasPrefix(a, "-") {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}
