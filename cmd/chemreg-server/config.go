package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/daniacca/chemreg/internal/chemreg"
)

// ServerConfig holds the server configuration
type ServerConfig struct {
	Addr         string
	TableFile    string
	SnapshotFile string
	LogLevel     string
}

// configResolver defines how to resolve a single configuration value
type configResolver struct {
	flagName    string
	envVarName  string
	defaultVal  string
	description string
	setter      func(*ServerConfig, string)
}

// loadServerConfig loads server configuration from CLI flags and environment variables.
// Uses a resolver pattern to make it easy to add new configuration options.
func loadServerConfig() ServerConfig {
	cfg := ServerConfig{}

	// Define all configuration resolvers
	// To add a new option, just add a new resolver here
	resolvers := []configResolver{
		{
			flagName:    "addr",
			envVarName:  "CHEMREG_ADDR",
			defaultVal:  ":8080",
			description: "HTTP listen address (e.g. :8080, 0.0.0.0:8080)",
			setter:      func(c *ServerConfig, v string) { c.Addr = v },
		},
		{
			flagName:    "table-file",
			envVarName:  "CHEMREG_TABLE_FILE",
			defaultVal:  "",
			description: "optional path to a JSON table config file to load at startup",
			setter:      func(c *ServerConfig, v string) { c.TableFile = v },
		},
		{
			flagName:    "snapshot-file",
			envVarName:  "CHEMREG_SNAPSHOT_FILE",
			defaultVal:  "./data/snapshot.json",
			description: "File where set snapshots are stored",
			setter:      func(c *ServerConfig, v string) { c.SnapshotFile = v },
		},
		{
			flagName:    "log-level",
			envVarName:  "CHEMREG_LOG_LEVEL",
			defaultVal:  "info",
			description: "Log level: debug, info, warn, error",
			setter:      func(c *ServerConfig, v string) { c.LogLevel = v },
		},
	}

	// Register string flags first
	flagVars := make(map[string]*string)
	for _, resolver := range resolvers {
		flagVars[resolver.flagName] = flag.String(resolver.flagName, "", resolver.description)
	}

	// Parse flags once
	flag.Parse()

	// Resolve values for each resolver
	for _, resolver := range resolvers {
		var value string
		if *flagVars[resolver.flagName] != "" {
			value = *flagVars[resolver.flagName]
		} else if envValue := os.Getenv(resolver.envVarName); envValue != "" {
			value = envValue
		} else {
			value = resolver.defaultVal
		}
		resolver.setter(&cfg, value)
	}

	return cfg
}

// loadInitialTableFromFile loads a table configuration from a JSON file.
// Returns the validated TableConfig, or an error.
func loadInitialTableFromFile(path string) (chemreg.TableConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chemreg.TableConfig{}, err
	}

	var cfg chemreg.TableConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return chemreg.TableConfig{}, err
	}

	// Validate the configuration
	if err := chemreg.ValidateTableConfig(cfg); err != nil {
		return chemreg.TableConfig{}, err
	}

	return cfg, nil
}
