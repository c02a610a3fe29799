package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"

	defaultCollection    = "hookvault"
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoDatabase = "hookvault-db"
	defaultHost          = "localhost"
	defaultPort          = "8080"
	defaultCopyFeedback  = 1500 * time.Millisecond
)

type Config struct {
	StorageDir string       `toml:"storage_dir"`
	Store      StoreConfig  `toml:"store"`
	Web        WebConfig    `toml:"web"`
	Browse     BrowseConfig `toml:"browse"`
}

// StoreConfig selects and locates the document store holding the hooks.
type StoreConfig struct {
	// Driver is either "sqlite" (default) or "mongo".
	Driver        string `toml:"driver"`
	Collection    string `toml:"collection"`
	MongoURI      string `toml:"mongo_uri,omitempty"`
	MongoDatabase string `toml:"mongo_database,omitempty"`
}

type WebConfig struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

type BrowseConfig struct {
	// APIURL is the base URL of a running `hookvault web` server.
	APIURL       string   `toml:"api_url"`
	CopyFeedback Duration `toml:"copy_feedback"`
}

type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func GetDefaultConfig() (*Config, error) {
	storageDir, err := GetDefaultStorageDir()
	if err != nil {
		return nil, fmt.Errorf("getting default storage directory: %w", err)
	}
	cfg := &Config{StorageDir: storageDir}
	cfg.applyDefaults()
	return cfg, nil
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.StorageDir == "" {
		storageDir, err := GetDefaultStorageDir()
		if err != nil {
			return nil, fmt.Errorf("getting default storage directory: %w", err)
		}
		config.StorageDir = storageDir
	}
	config.StorageDir = expandHome(config.StorageDir)
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Store.Driver == "" {
		c.Store.Driver = DriverSQLite
	}
	if c.Store.Collection == "" {
		c.Store.Collection = defaultCollection
	}
	if c.Store.Driver == DriverMongo {
		if c.Store.MongoURI == "" {
			c.Store.MongoURI = defaultMongoURI
		}
		if c.Store.MongoDatabase == "" {
			c.Store.MongoDatabase = defaultMongoDatabase
		}
	}
	if c.Web.Host == "" {
		c.Web.Host = defaultHost
	}
	if c.Web.Port == "" {
		c.Web.Port = defaultPort
	}
	if c.Browse.APIURL == "" {
		c.Browse.APIURL = fmt.Sprintf("http://%s:%s", c.Web.Host, c.Web.Port)
	}
	if c.Browse.CopyFeedback.Duration == 0 {
		c.Browse.CopyFeedback = Duration{defaultCopyFeedback}
	}
}

// Validate checks settings that have no sensible fallback.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("unknown store driver %q (expected %q or %q)", c.Store.Driver, DriverSQLite, DriverMongo)
	}
	if c.Browse.CopyFeedback.Duration < 0 {
		return fmt.Errorf("browse.copy_feedback must not be negative")
	}
	return nil
}

// DBPath is the sqlite document store location.
func (c *Config) DBPath() string {
	return filepath.Join(c.StorageDir, "hookvault.db")
}

// ListenAddr is the address the web server binds to.
func (c *Config) ListenAddr() string {
	return c.Web.Host + ":" + c.Web.Port
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	storageDir := c.StorageDir
	if storageDir == "" {
		var err error
		storageDir, err = GetDefaultStorageDir()
		if err != nil {
			return fmt.Errorf("getting default storage directory: %w", err)
		}
	}

	template := strings.Replace(configTemplate, "/home/user/.local/share/hookvault", storageDir, 1)
	return os.WriteFile(configPath, []byte(template), 0644)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// GetDefaultStorageDir returns the default storage directory for the sqlite store
func GetDefaultStorageDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	dir := filepath.Join(dataDir, "hookvault")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating storage directory %s: %w", dir, err)
	}

	return dir, nil
}

// GetConfigDir returns the configuration directory for hookvault
func GetConfigDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, "hookvault")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	return dir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}
