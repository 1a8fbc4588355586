// Package config loads the ini configuration and its environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"rothermal/calculator"
)

const DefaultConfigPath = "conf/config.ini"

// environment overrides, optionally read from .env
const (
	EnvConfigPath = "ROTHERMAL_CONF"
	EnvOutputDir  = "ROTHERMAL_OUTPUT"
)

// LoadEnv reads an optional .env file and returns the config path to use.
// An explicit path wins over ROTHERMAL_CONF.
func LoadEnv(explicit string) string {
	_ = godotenv.Load() // ignore missing file
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultConfigPath
}

type Paths struct {
	TempList  string
	TPSDir    string
	PartDir   string
	OutputDir string
	Debug     bool
}

type ServerConfig struct {
	Addr        string
	MetricsPath string
}

type LogConfig struct {
	Level string
	JSON  bool
}

type Config struct {
	Paths      Paths
	Calculator calculator.Options
	Server     ServerConfig
	Log        LogConfig
}

// Load reads the ini file at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.WithField("path", path).Warn("config file not found, using defaults")
		return applyEnv(loadCfg(ini.Empty())), nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return applyEnv(loadCfg(file)), nil
}

func applyEnv(cfg Config) Config {
	if out := os.Getenv(EnvOutputDir); out != "" {
		cfg.Paths.OutputDir = out
	}
	return cfg
}

func loadCfg(file *ini.File) Config {
	def := calculator.DefaultOptions()
	paths := file.Section("paths")
	calc := file.Section("calculator")
	return Config{
		Paths: Paths{
			TempList:  paths.Key("temp_list").MustString("bib/Temp_List.csv"),
			TPSDir:    paths.Key("tps_dir").MustString("bib/tps"),
			PartDir:   paths.Key("part_dir").MustString("bib/part"),
			OutputDir: paths.Key("output_dir").MustString("out/"),
			Debug:     paths.Key("debug").MustBool(true),
		},
		Calculator: calculator.Options{
			Equalized:       calc.Key("temperature_equalized").MustFloat64(def.Equalized),
			ReferenceWindow: calc.Key("reference_window").MustFloat64(def.ReferenceWindow),
			OutputOffset:    calc.Key("output_offset").MustFloat64(def.OutputOffset),
			SnapLow:         calc.Key("snap_low").MustFloat64(def.SnapLow),
			SnapHigh:        calc.Key("snap_high").MustFloat64(def.SnapHigh),
		},
		Server: ServerConfig{
			Addr:        file.Section("server").Key("addr").MustString(":9000"),
			MetricsPath: file.Section("server").Key("metrics_path").MustString("/metrics"),
		},
		Log: LogConfig{
			Level: file.Section("log").Key("level").MustString("info"),
			JSON:  file.Section("log").Key("json").MustBool(false),
		},
	}
}
