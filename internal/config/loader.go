package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/francois95140/unisql/engine/executor"
	"github.com/francois95140/unisql/mapping"
)

// DefaultConfigFile is read from the working directory when no file is given
const DefaultConfigFile = "unisql.yaml"

// envKeys maps the recognized environment variables to config keys
var envKeys = map[string]string{
	"POSTGRES_HOST":     "postgres.host",
	"POSTGRES_PORT":     "postgres.port",
	"POSTGRES_USER":     "postgres.user",
	"POSTGRES_PASSWORD": "postgres.password",
	"POSTGRES_DB":       "postgres.database",
	"MYSQL_HOST":        "mysql.host",
	"MYSQL_PORT":        "mysql.port",
	"MYSQL_USER":        "mysql.user",
	"MYSQL_PASSWORD":    "mysql.password",
	"MYSQL_DB":          "mysql.database",
	"MONGO_HOST":        "mongo.host",
	"MONGO_PORT":        "mongo.port",
	"MONGO_USER":        "mongo.user",
	"MONGO_PASSWORD":    "mongo.password",
	"MONGO_DB":          "mongo.database",
	"NEO4J_HOST":        "neo4j.host",
	"NEO4J_BOLT_PORT":   "neo4j.bolt_port",
	"NEO4J_USER":        "neo4j.user",
	"NEO4J_PASSWORD":    "neo4j.password",
	"UNISQL_DEBUG":      "debug",
	"UNISQL_VALIDATE":   "validate",
	"UNISQL_ADDR":       "server.addr",
}

// flagKeys maps CLI flags to config keys where the names differ
var flagKeys = map[string]string{
	"addr": "server.addr",
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"postgres.host":     "localhost",
		"postgres.port":     5432,
		"postgres.user":     "postgres",
		"postgres.database": "postgres",
		"postgres.sslmode":  "disable",
		"mysql.host":        "localhost",
		"mysql.port":        3306,
		"mysql.user":        "root",
		"mongo.host":        "localhost",
		"mongo.port":        27017,
		"mongo.database":    "test",
		"neo4j.host":        "localhost",
		"neo4j.bolt_port":   7687,
		"neo4j.user":        "neo4j",
		"server.addr":       ":8000",
		"debug":             false,
		"validate":          false,
	}
}

// Load loads configuration from defaults, a YAML file, environment variables
// and flags. Precedence (highest to lowest): flags > env vars > config file >
// defaults. An explicit cfgFile must exist; the default file is optional.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only when explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[key]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// Providers builds one connection provider per backend
func (c *Config) Providers(logger *slog.Logger) ([]executor.Provider, error) {
	pg, err := executor.NewSQLProvider(mapping.PostgreSQL, c.Postgres.PostgresDSN(), logger)
	if err != nil {
		return nil, err
	}
	my, err := executor.NewSQLProvider(mapping.MySQL, c.MySQL.MySQLDSN(), logger)
	if err != nil {
		return nil, err
	}
	return []executor.Provider{
		pg,
		my,
		executor.NewMongoProvider(c.Mongo.URI(), c.Mongo.Database, logger),
		executor.NewNeo4jProvider(c.Neo4j.URI(), c.Neo4j.User, c.Neo4j.Password, logger),
	}, nil
}
