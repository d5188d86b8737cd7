package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Destination  string   `mapstructure:"destination"`
	DuplicateDir string   `mapstructure:"duplicate_dir"`
	ImageExt     []string `mapstructure:"image_extensions"`
	RawExt       []string `mapstructure:"raw_extensions"`
	UseExifTool  bool     `mapstructure:"use_exiftool"`
}

func LoadConfig() (*Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find user config dir: %w", err)
	}

	viper.SetConfigName("organizer")
	viper.SetConfigType("toml")
	viper.AddConfigPath(filepath.Join(configDir, "photo-exif-organizer"))

	viper.SetDefault("destination", "./organized_images")
	viper.SetDefault("duplicate_dir", "./duplicates")
	viper.SetDefault("image_extensions", []string{
		".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".tif", ".webp",
	})
	viper.SetDefault("raw_extensions", []string{".arw", ".raw", ".cr2", ".nef"})
	viper.SetDefault("use_exiftool", false)

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; that's OK, just use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Extensions returns the merged, lower-cased set of recognized extensions.
func (c *Config) Extensions() map[string]bool {
	set := make(map[string]bool, len(c.ImageExt)+len(c.RawExt))
	for _, e := range c.ImageExt {
		set[strings.ToLower(e)] = true
	}
	for _, e := range c.RawExt {
		set[strings.ToLower(e)] = true
	}
	return set
}
