package main

import (
	"flag"
	"fmt"
	"os"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	Subject     string
	PathExpr    string
	ContextPath string
	NATSURL     string
	Execute     bool
	LogLevel    string
	LogFormat   string
	ShowVersion bool
	ShowHelp    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("SPARQLPATH_CONFIG", ""),
		"Path to configuration file (env: SPARQLPATH_CONFIG)")

	flag.StringVar(&cfg.Subject, "subject", "",
		"IRI of the path's starting subject")

	flag.StringVar(&cfg.PathExpr, "path", "",
		"Dot-separated property chain, e.g. friends.name")

	flag.StringVar(&cfg.ContextPath, "context",
		getEnv("SPARQLPATH_CONTEXT", ""),
		"Path to a JSON-LD context file for property resolution (env: SPARQLPATH_CONTEXT)")

	flag.StringVar(&cfg.NATSURL, "nats-url",
		getEnv("SPARQLPATH_NATS_URL", ""),
		"NATS server URL, overrides the config file (env: SPARQLPATH_NATS_URL)")

	flag.BoolVar(&cfg.Execute, "execute", false,
		"Execute the compiled query over NATS and print the bindings")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("SPARQLPATH_LOG_LEVEL", ""),
		"Log level: debug, info, warn, error (env: SPARQLPATH_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("SPARQLPATH_LOG_FORMAT", ""),
		"Log format: json, text (env: SPARQLPATH_LOG_FORMAT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	flag.Usage = printUsage
	flag.Parse()

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `sparqlpath - compile property paths to SPARQL queries

Usage:
  sparqlpath --subject <IRI> --path <properties> [options]

Examples:
  sparqlpath --subject https://example.org/#me --path friends.name
  sparqlpath --subject https://example.org/#me --path knows --execute \
      --nats-url nats://localhost:4222

Options:
`)
	flag.PrintDefaults()
}
