package cmd_env

import (
	"context"
	"fmt"
	"hourbox/app"
	"hourbox/config"
	"hourbox/file_io"
	L "hourbox/logger"
	"os"
	"path/filepath"
	"strings"
)

// Env carries the global flags and the parsed configuration to every subcommand.
type Env struct {
	ConfigPath   string
	LogLevel     string
	ColorMode    string
	Configurator config.Configurator
}

func New() *Env {
	return &Env{
		LogLevel:     L.GetLogLevel().String(),
		ColorMode:    "auto",
		Configurator: config.New(),
	}
}

// Setup applies the log flags and parses the config file, creating the
// default one on first use.
func (e *Env) Setup() error {
	err := L.SetLevelFromString(e.LogLevel)
	if err != nil {
		return err
	}
	err = L.SetColorModeFromString(e.ColorMode)
	if err != nil {
		return err
	}

	configPath := e.ConfigPath
	if configPath != "" {
		configPath, err = ExpandHome(configPath)
		if err != nil {
			return err
		}
		readable, err := file_io.IsReadable(configPath)
		if err != nil || !readable {
			return fmt.Errorf("config is not readable: %s", configPath)
		}
	} else {
		configPath, err = e.Configurator.GetDefaultConfigPath()
		if err != nil {
			return err
		}
	}
	if configPath == "" {
		return nil
	}
	configPathAbs, err := filepath.Abs(configPath)
	if err != nil {
		return err
	}
	L.Debug(fmt.Sprintf("Using config: %s", configPathAbs))
	e.ConfigPath = configPathAbs
	return e.Configurator.Parse(configPathAbs)
}

func (e *Env) Config() *config.Config {
	return e.Configurator.Get()
}

func (e *Env) OpenApp(ctx context.Context) (*app.App, error) {
	return app.Open(ctx, e.Configurator)
}

// ExpandHome expands a leading "~/".
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~ for %s: %w", path, err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}
