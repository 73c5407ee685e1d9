// Package main implements the sparqlpath command line tool. It compiles a
// dot-separated property chain into a SPARQL query and optionally executes
// the query against a responder over NATS.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nats-io/nats.go"

	"github.com/c360/sparqlpath/config"
	"github.com/c360/sparqlpath/engine"
	"github.com/c360/sparqlpath/path"
	"github.com/c360/sparqlpath/rdf"
	"github.com/c360/sparqlpath/sparql"
	"github.com/c360/sparqlpath/vocabulary"
)

const (
	Version = "0.1.0"
	appName = "sparqlpath"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cli := parseFlags()

	if cli.ShowHelp {
		printUsage()
		return nil
	}
	if cli.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		return nil
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	if cli.Subject == "" || cli.PathExpr == "" {
		printUsage()
		return fmt.Errorf("both --subject and --path are required")
	}

	query, err := compileQuery(cli, cfg, logger)
	if err != nil {
		return err
	}
	fmt.Println(query)

	if !cli.Execute {
		return nil
	}
	return executeQuery(cfg, logger, query)
}

func loadConfig(cli *CLIConfig) (*config.Config, error) {
	cfg := config.Default()
	if cli.ConfigPath != "" {
		loaded, err := config.Load(cli.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Flags win over the config file.
	if cli.NATSURL != "" {
		cfg.NATS.URL = cli.NATSURL
	}
	if cli.ContextPath != "" {
		cfg.ContextFile = cli.ContextPath
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Logging.Format = cli.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func compileQuery(cli *CLIConfig, cfg *config.Config, logger *slog.Logger) (string, error) {
	vocab := vocabulary.Default()
	if cfg.ContextFile != "" {
		loaded, err := vocabulary.Load(cfg.ContextFile)
		if err != nil {
			return "", err
		}
		vocab = loaded
	}

	compiler := sparql.New(sparql.WithLogger(logger))
	registry := path.NewRegistry(vocab)
	sparql.RegisterHandler(registry, compiler)

	arena := path.NewArena()
	current := arena.Root(rdf.NamedNode{IRI: cli.Subject})

	for _, property := range strings.Split(cli.PathExpr, ".") {
		value, err := registry.Access(current, property)
		if err != nil {
			return "", err
		}
		next, ok := value.(path.Path)
		if !ok {
			return "", fmt.Errorf("property %q does not extend the path", property)
		}
		current = next
	}

	value, err := registry.Access(current, "sparql")
	if err != nil {
		return "", err
	}
	query, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("unexpected compilation result %T", value)
	}
	return query, nil
}

func executeQuery(cfg *config.Config, logger *slog.Logger, query string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := nats.Connect(cfg.NATS.URL,
		nats.Name(cfg.NATS.Name),
		nats.MaxReconnects(cfg.NATS.MaxReconnects),
		nats.ReconnectWait(cfg.NATS.ReconnectWait),
	)
	if err != nil {
		return fmt.Errorf("connect to NATS at %s: %w", cfg.NATS.URL, err)
	}
	defer conn.Close()

	eng, err := engine.New(engine.Deps{
		Conn:   conn,
		Config: cfg.Engine,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	results, err := eng.Execute(ctx, query)
	if err != nil {
		return err
	}
	printResults(results)
	return nil
}

func printResults(results *engine.Results) {
	if results.Boolean != nil {
		fmt.Println(*results.Boolean)
		return
	}
	if results.Results == nil || len(results.Results.Bindings) == 0 {
		fmt.Println("(no results)")
		return
	}
	for _, binding := range results.Results.Bindings {
		for _, variable := range results.Head.Vars {
			if term, ok := binding[variable]; ok {
				fmt.Printf("%s = %s\n", variable, term.Value)
			}
		}
	}
}
