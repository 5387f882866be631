// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package pkiconf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/H0llyW00dzZ/tunnel-pki/src/internal/pki/fault"
	"gopkg.in/yaml.v3"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// EnvConfigFile names the environment variable consulted for the
// configuration file path when none is passed explicitly.
const EnvConfigFile = "TUNNEL_PKI_CONFIG_FILE"

// Subject holds the distinguished-name fields applied to every issued
// certificate. The common name is supplied per identity, not here.
type Subject struct {
	Country      string `json:"country" yaml:"country"`
	State        string `json:"state" yaml:"state"`
	Locality     string `json:"locality" yaml:"locality"`
	Organization string `json:"organization" yaml:"organization"`
}

// Config is the explicit configuration object for the certificate hierarchy
// manager. It is constructed once at startup and passed into every operation;
// nothing reads ambient process-wide state.
//
// The configuration can be loaded from a JSON or YAML file, with defaults
// applied for any missing values. Supported file extensions: .json, .yaml, .yml
type Config struct {
	// StoreDir: Root directory of the certificate store
	StoreDir string `json:"storeDir" yaml:"storeDir"`
	// ManifestPath: Plain-text client manifest, one CN per line
	ManifestPath string `json:"manifestPath" yaml:"manifestPath"`

	// Subject: Distinguished-name defaults for all issued certificates
	Subject Subject `json:"subject" yaml:"subject"`

	// CA: Root certificate authority settings
	CA struct {
		CommonName   string `json:"commonName" yaml:"commonName"`
		ValidityDays int    `json:"validityDays" yaml:"validityDays"`
	} `json:"ca" yaml:"ca"`

	// Server: Server identity settings
	Server struct {
		CommonName   string   `json:"commonName" yaml:"commonName"`
		SANs         []string `json:"sans" yaml:"sans"`
		ValidityDays int      `json:"validityDays" yaml:"validityDays"`
	} `json:"server" yaml:"server"`

	// Client: Per-client identity settings
	Client struct {
		ValidityDays int `json:"validityDays" yaml:"validityDays"`
	} `json:"client" yaml:"client"`
}

// detectConfigFormat determines the configuration file format based on file extension.
// It uses case-insensitive extension matching for cross-platform compatibility.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// applyDefaults fills in any zero-valued settings.
//
// Default validity periods reflect the rotation policy: client identities
// rotate yearly, the server identity lasts ten years, and the CA outlives
// both.
func applyDefaults(config *Config) {
	if config.StoreDir == "" {
		config.StoreDir = "certs"
	}
	if config.ManifestPath == "" {
		config.ManifestPath = "clients.txt"
	}
	if config.Subject.Country == "" {
		config.Subject.Country = "US"
	}
	if config.Subject.Organization == "" {
		config.Subject.Organization = "Tunnel PKI"
	}
	if config.CA.CommonName == "" {
		config.CA.CommonName = "tunnel-pki-ca"
	}
	if config.CA.ValidityDays <= 0 {
		config.CA.ValidityDays = 7300
	}
	if config.Server.CommonName == "" {
		config.Server.CommonName = "tunnel-server"
	}
	if len(config.Server.SANs) == 0 {
		config.Server.SANs = []string{"DNS:localhost", "IP:127.0.0.1"}
	}
	if config.Server.ValidityDays <= 0 {
		config.Server.ValidityDays = 3650
	}
	if config.Client.ValidityDays <= 0 {
		config.Client.ValidityDays = 365
	}
}

// Validate checks the configuration for internal consistency.
//
// The relative lifetime ordering client < server < CA is an operational
// invariant: client identities must rotate more frequently than the server
// identity, and nothing may outlive the CA that signs it.
func (c *Config) Validate() error {
	if c.StoreDir == "" {
		return fault.Invalid("store directory must not be empty")
	}
	if c.Client.ValidityDays >= c.Server.ValidityDays {
		return fault.Invalid("client validity (%d days) must be shorter than server validity (%d days)",
			c.Client.ValidityDays, c.Server.ValidityDays)
	}
	if c.Server.ValidityDays >= c.CA.ValidityDays {
		return fault.Invalid("server validity (%d days) must be shorter than CA validity (%d days)",
			c.Server.ValidityDays, c.CA.ValidityDays)
	}
	return nil
}

// Load loads the configuration from a JSON or YAML file or applies defaults.
//
// Configuration priority:
//  1. Default values are set
//  2. TUNNEL_PKI_CONFIG_FILE environment variable is checked if configPath is empty
//  3. Config file values override defaults (if file exists and is valid)
//
// The file format is automatically detected from the extension
// (.json, .yaml, or .yml). The returned configuration is always validated.
func Load(configPath string) (*Config, error) {
	config := &Config{}

	// Check environment variable for config file path if not provided
	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	// Try to load from file if path is provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fault.StoreIO(err, "failed to read config file %s", configPath)
		}

		// Detect format and unmarshal accordingly
		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, fault.Invalid("config file %s: %v", configPath, err)
		}
	}

	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
