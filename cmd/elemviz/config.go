package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configFile is looked up in the working directory; it supplies
// defaults that flags override.
const configFile = ".elemviz.yaml"

// fileConfig holds the optional defaults from .elemviz.yaml.
type fileConfig struct {
	Format    string `yaml:"format"`
	Cmap      string `yaml:"cmap"`
	Labels    string `yaml:"labels"`
	Precision string `yaml:"precision"`
	BarColor  string `yaml:"bar_color"`
}

// loadConfig reads .elemviz.yaml from dir. A missing file is not an
// error; the zero config means built-in defaults apply.
func loadConfig(dir string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", configFile, err)
	}
	return cfg, nil
}

// loadConfigOrWarn loads the working-directory config, degrading to
// built-in defaults (with a warning) when the file is unreadable.
func loadConfigOrWarn() fileConfig {
	dir, err := os.Getwd()
	if err != nil {
		return fileConfig{}
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		logger.Warn("ignoring config file", "err", err)
		return fileConfig{}
	}
	return cfg
}

// resolve applies the flag > file > built-in precedence for one string
// setting: the flag value wins when the user set it or the file has no
// opinion.
func resolve(cmd *cobra.Command, flag, flagVal, fileVal string) string {
	if cmd.Flags().Changed(flag) || fileVal == "" {
		return flagVal
	}
	return fileVal
}
