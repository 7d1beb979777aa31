package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env          string        `yaml:"env" env-required:"true"`
	StoragePath  string        `yaml:"storage_path" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"1h"`
	HTTPServer   `yaml:"http_server"`
	AssetStorage `yaml:"asset_storage"`
}

type HTTPServer struct {
	Address      string        `yaml:"address" env-default:"localhost:8080"`
	Timeout      time.Duration `yaml:"timeout" env-default:"4s"`
	IddleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	TmpDir       string        `yaml:"tmp_dir" env-default:"./tmp"`
}

type AssetStorage struct {
	AssetPath        string `yaml:"path" env-required:"true"`
	MaxGalleryImages int    `yaml:"max_gallery_images" env-default:"10"`
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadPath(configPath)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
