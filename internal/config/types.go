// Package config loads connection settings for every backend.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

// Config holds all configuration options
type Config struct {
	Postgres SQLConfig    `koanf:"postgres"`
	MySQL    SQLConfig    `koanf:"mysql"`
	Mongo    MongoConfig  `koanf:"mongo"`
	Neo4j    Neo4jConfig  `koanf:"neo4j"`
	Server   ServerConfig `koanf:"server"`
	Debug    bool         `koanf:"debug"`
	Validate bool         `koanf:"validate"`
}

// SQLConfig holds a relational connection
type SQLConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
	SSLMode  string `koanf:"sslmode"`
}

// PostgresDSN constructs a key=value PostgreSQL connection string
func (c SQLConfig) PostgresDSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", c.Host, c.Port, c.Database, sslmode)
	if c.User != "" {
		dsn += fmt.Sprintf(" user=%s", c.User)
	}
	if c.Password != "" {
		dsn += fmt.Sprintf(" password=%s", c.Password)
	}
	return dsn
}

// MySQLDSN constructs a go-sql-driver DSN
func (c SQLConfig) MySQLDSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	cfg.DBName = c.Database
	return cfg.FormatDSN()
}

// MongoConfig holds a MongoDB connection
type MongoConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
}

// URI renders mongodb://[user:password@]host:port/
func (c MongoConfig) URI() string {
	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/",
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String()
}

// Neo4jConfig holds a Neo4j bolt connection
type Neo4jConfig struct {
	Host     string `koanf:"host"`
	BoltPort int    `koanf:"bolt_port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
}

// URI renders bolt://host:port
func (c Neo4jConfig) URI() string {
	return "bolt://" + net.JoinHostPort(c.Host, strconv.Itoa(c.BoltPort))
}

// ServerConfig holds the HTTP front end settings
type ServerConfig struct {
	Addr string `koanf:"addr"`
}
