package mediaportconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// FlickrConfig defines the configuration specific to Flickr. ApiKey/ApiSecret
// identify the application; AccessToken/TokenSecret are the user's OAuth1
// token pair.
type FlickrConfig struct {
	ApiKey      string `mapstructure:"api_key"`
	ApiSecret   string `mapstructure:"api_secret"`
	AccessToken string `mapstructure:"access_token"`
	TokenSecret string `mapstructure:"token_secret"`
}

// GooglePhotosConfig defines the configuration specific to Google Photos.
type GooglePhotosConfig struct {
	ClientId     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	AccessToken  string `mapstructure:"access_token"`
	RefreshToken string `mapstructure:"refresh_token"`

	// DefaultAlbum is the album imported photos are added to. Empty means
	// the importer's built-in default title.
	DefaultAlbum string `mapstructure:"default_album"`
}

// MediaportConfig defines the configuration for mediaport.
type MediaportConfig struct {
	// JobStorePath is the SQLite file holding job-scoped import state.
	// Empty means a file next to the config.
	JobStorePath string `mapstructure:"job_store_path"`

	Flickr       FlickrConfig       `mapstructure:"flickr"`
	GooglePhotos GooglePhotosConfig `mapstructure:"google_photos"`

	path string `mapstructure:"-"`
}

func (c *FlickrConfig) Validate() error {
	if c.ApiKey == "" || c.ApiSecret == "" {
		return fmt.Errorf("missing flickr api_key or api_secret")
	}
	if c.AccessToken == "" || c.TokenSecret == "" {
		return fmt.Errorf("missing flickr access_token or token_secret")
	}
	return nil
}

func (c *GooglePhotosConfig) Validate() error {
	if c.ClientId == "" || c.ClientSecret == "" {
		return fmt.Errorf("missing google photos client_id or client_secret")
	}
	if c.AccessToken == "" && c.RefreshToken == "" {
		return fmt.Errorf("missing google photos access_token or refresh_token")
	}
	return nil
}

// Validate checks the fields the given vendor needs. Only the section for the
// vendor being imported to has to be present.
func (c *MediaportConfig) ValidateFor(vendor string) error {
	switch vendor {
	case "flickr":
		if err := c.Flickr.Validate(); err != nil {
			return fmt.Errorf("invalid flickr config (%s): %w", c.path, err)
		}
	case "googlephotos":
		if err := c.GooglePhotos.Validate(); err != nil {
			return fmt.Errorf("invalid google_photos config (%s): %w", c.path, err)
		}
	default:
		return fmt.Errorf("unknown vendor %q", vendor)
	}
	return nil
}

// DefaultJobStorePath returns the job store location for this config: the
// configured path if set, otherwise a file next to the config file.
func (c *MediaportConfig) DefaultJobStorePath() string {
	if c.JobStorePath != "" {
		return c.JobStorePath
	}
	return filepath.Join(filepath.Dir(c.path), "jobs.db")
}

// DefaultConfigPath returns the default path for the mediaport config file.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to determine user config dir: %w", err)
	}
	return filepath.Join(dir, "mediaport", "config.toml"), nil
}

// getConfigPath determines where to read the config file from.
func getConfigPath(configPathFlag string) (string, error) {
	// Prefer user-specific config file path if specified.
	if configPathFlag != "" {
		return configPathFlag, nil
	}
	return DefaultConfigPath()
}

// LoadConfig reads the config file.
func LoadConfig(configPathFlag string) (MediaportConfig, error) {
	path, err := getConfigPath(configPathFlag)
	if err != nil {
		return MediaportConfig{}, err
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("toml")

	if err := viper.ReadInConfig(); err != nil {
		return MediaportConfig{}, fmt.Errorf("error reading (%s): %w", path, err)
	}
	config := MediaportConfig{path: path}
	if err := viper.Unmarshal(&config); err != nil {
		return MediaportConfig{}, fmt.Errorf("error unmarshaling (%s): %w", path, err)
	}
	return config, nil
}
