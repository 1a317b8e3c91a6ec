package config

import (
	"encoding/json"
	"fmt"
	"hourbox/file_io"
	L "hourbox/logger"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DEFAULT_TARGET_HOURS    float64  = 500
	DEFAULT_MAX_UPLOAD_SIZE ByteSize = 200 * 1024 * 1024
	DEFAULT_METADATA_QUOTA  ByteSize = 5 * 1024 * 1024
	DEFAULT_REMOTE_TIMEOUT  int      = 10
)

// environment overrides, read after the optional .env file in the config dir
const (
	ENV_TOKEN        = "HOURBOX_TOKEN"
	ENV_REMOTE_URL   = "HOURBOX_REMOTE_URL"
	ENV_JWT_SECRET   = "HOURBOX_JWT_SECRET"
	ENV_DATABASE_URL = "HOURBOX_DATABASE_URL"
	ENV_REDIS_URL    = "HOURBOX_REDIS_URL"
)

type Remote struct {
	Enabled        bool   `json:"enabled"`
	URL            string `json:"url"`
	Token          string `json:"token,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type Server struct {
	Listen        string        `json:"listen"`
	Storage       ServerStorage `json:"storage"`
	DSN           string        `json:"dsn,omitempty"`
	RedisURL      string        `json:"redis_url,omitempty"`
	JwtSecret     string        `json:"jwt_secret,omitempty"`
	TokenTTLHours int           `json:"token_ttl_hours"`
}

type Config struct {
	DataDir       string   `json:"data_dir,omitempty"`
	TargetHours   float64  `json:"target_hours"`
	MaxUploadSize ByteSize `json:"max_upload_size"`
	MetadataQuota ByteSize `json:"metadata_quota"`
	Remote        *Remote  `json:"remote,omitempty"`
	Server        *Server  `json:"server,omitempty"`
}

var config = defaultConfig()
var configPath string

func Parse(configPathArg string) error {
	file, err := os.Open(configPathArg)
	if err != nil {
		return fmt.Errorf("config: could not open config file for reading: %w", err)
	}
	defer file.Close()
	parsed := defaultConfig()
	decoder := json.NewDecoder(file)
	err = decoder.Decode(&parsed)
	if err != nil {
		return fmt.Errorf("config: malformed config %s: %w", configPathArg, err)
	}
	absPath, err := filepath.Abs(configPathArg)
	if err != nil {
		return err
	}
	err = loadEnv(filepath.Dir(absPath), &parsed)
	if err != nil {
		return fmt.Errorf("config: could not read environment: %w", err)
	}
	err = validate(&parsed)
	if err != nil {
		return fmt.Errorf("config: could not validate config: %w", err)
	}
	config = parsed
	configPath = absPath
	return nil
}

func Get() *Config {
	return &config
}

func GetDefaultConfigDir() (string, error) {
	configDir, configDirError := os.UserConfigDir()
	homeDir, homeDirError := os.UserHomeDir()
	if configDirError != nil && homeDirError != nil {
		return "", fmt.Errorf("config: cannot find config dir: Config: %w, Home: %w", configDirError, homeDirError)
	}
	var dir string
	if configDirError == nil {
		dir = configDir
	} else {
		dir = homeDir
	}
	dir, err := filepath.Abs(filepath.Join(dir, "hourbox"))
	if err != nil {
		return "", err
	}
	L.Debug(fmt.Sprintf("Using config directory: %s", dir))
	err = os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return "", err
	}
	return dir, nil
}

func GetDefaultConfigPath() (string, error) {
	configDir, err := GetDefaultConfigDir()
	if err != nil {
		return "", err
	}
	configFilePath := filepath.Join(configDir, "config.json")
	exists, err := file_io.Exists(configFilePath)
	if err != nil {
		return "", err
	}
	if !exists {
		_, err = file_io.WriteToFile(configFilePath, []byte(DumpDefaultConfig()), file_io.WRITE_OVERWRITE)
		if err != nil {
			return "", err
		}
	}
	return configFilePath, nil
}

func GetConfigPath() string {
	return configPath
}

// GetDataDir is where the local database lives: data_dir when set,
// otherwise the directory holding the config file.
func (c *Config) GetDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" && configPath != "" {
		dir = filepath.Dir(configPath)
	}
	if dir == "" {
		return GetDefaultConfigDir()
	}
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return "", fmt.Errorf("config: could not create data dir %s: %w", dir, err)
	}
	return dir, nil
}

func (c *Config) ToJson() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func DumpDefaultConfig() string {
	defaultConfig := defaultConfig()
	configStr, err := defaultConfig.ToJson()
	if err != nil {
		return ""
	}
	return configStr
}

func defaultConfig() Config {
	return Config{
		TargetHours:   DEFAULT_TARGET_HOURS,
		MaxUploadSize: DEFAULT_MAX_UPLOAD_SIZE,
		MetadataQuota: DEFAULT_METADATA_QUOTA,
		Remote: &Remote{
			Enabled:        false,
			URL:            "http://localhost:5000",
			TimeoutSeconds: DEFAULT_REMOTE_TIMEOUT,
		},
		Server: &Server{
			Listen:        ":5000",
			Storage:       STORAGE_SQLITE,
			TokenTTLHours: 24,
		},
	}
}

func loadEnv(dir string, c *Config) error {
	envPath := filepath.Join(dir, ".env")
	exists, err := file_io.Exists(envPath)
	if err != nil {
		return err
	}
	if exists {
		// existing process variables win over the file
		err = godotenv.Load(envPath)
		if err != nil {
			return fmt.Errorf("could not load %s: %w", envPath, err)
		}
		L.Debug(fmt.Sprintf("Loaded environment from %s", envPath))
	}
	if c.Remote == nil {
		c.Remote = defaultConfig().Remote
	}
	if c.Server == nil {
		c.Server = defaultConfig().Server
	}
	if v := os.Getenv(ENV_TOKEN); v != "" {
		c.Remote.Token = v
	}
	if v := os.Getenv(ENV_REMOTE_URL); v != "" {
		c.Remote.URL = v
		c.Remote.Enabled = true
	}
	if v := os.Getenv(ENV_JWT_SECRET); v != "" {
		c.Server.JwtSecret = v
	}
	if v := os.Getenv(ENV_DATABASE_URL); v != "" {
		c.Server.DSN = v
	}
	if v := os.Getenv(ENV_REDIS_URL); v != "" {
		c.Server.RedisURL = v
	}
	return nil
}

func validate(c *Config) error {
	if c.TargetHours <= 0 {
		return fmt.Errorf("target_hours must be positive")
	}
	if c.MaxUploadSize == 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	if c.MetadataQuota == 0 {
		return fmt.Errorf("metadata_quota must be positive")
	}
	if c.Remote.Enabled && strings.TrimSpace(c.Remote.URL) == "" {
		return fmt.Errorf("remote.url is required when remote is enabled")
	}
	if c.Remote.TimeoutSeconds <= 0 {
		c.Remote.TimeoutSeconds = DEFAULT_REMOTE_TIMEOUT
	}
	switch c.Server.Storage {
	case STORAGE_SQLITE:
	case STORAGE_POSTGRES:
		if c.Server.DSN == "" {
			return fmt.Errorf("server.dsn is required for %s storage", STORAGE_POSTGRES)
		}
	case STORAGE_REDIS:
		if c.Server.RedisURL == "" {
			return fmt.Errorf("server.redis_url is required for %s storage", STORAGE_REDIS)
		}
	default:
		return fmt.Errorf("unknown server storage")
	}
	return nil
}
