// Package config loads the settings of the dealctl command line client.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Keys understood by Load. Each is read from DEALFLOW_<KEY> and may be bound to a flag.
const (
	KeyAPIURL          = "api_url"
	KeyCredentialsFile = "credentials_file"
	KeyHTTPTimeout     = "http_timeout"
)

// Config holds client configuration.
type Config struct {
	APIURL          string
	CredentialsFile string
	HTTPTimeout     time.Duration
}

// Load reads configuration from v, which the caller may have bound to flags.
// It looks for a .env file first.
func Load(v *viper.Viper) (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v.SetEnvPrefix("DEALFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPIURL, "http://localhost:8000")
	v.SetDefault(KeyCredentialsFile, defaultCredentialsFile())
	v.SetDefault(KeyHTTPTimeout, "15s")

	apiURL := strings.TrimRight(v.GetString(KeyAPIURL), "/")
	u, err := url.Parse(apiURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q", apiURL)
	}

	timeout := v.GetDuration(KeyHTTPTimeout)
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP timeout %q", v.GetString(KeyHTTPTimeout))
	}

	return &Config{
		APIURL:          apiURL,
		CredentialsFile: v.GetString(KeyCredentialsFile),
		HTTPTimeout:     timeout,
	}, nil
}

func defaultCredentialsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "dealflow", "credentials.yaml")
}
