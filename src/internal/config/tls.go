// FILE: logship/src/internal/config/tls.go
package config

import (
	"fmt"
	"os"
)

// TLSClientConfig configures outbound TLS for a sender.
type TLSClientConfig struct {
	Enabled bool `toml:"enabled"`

	// PEM bundle used instead of the system roots to verify the server
	CAFile string `toml:"ca_file"`

	// Client certificate for mTLS, both or neither
	CertFile string `toml:"cert_file"`
	KeyFile  string `toml:"key_file"`

	// Overrides the verified host name
	ServerName string `toml:"server_name"`

	// "TLS1.2" or "TLS1.3"
	MinVersion string `toml:"min_version"`
	MaxVersion string `toml:"max_version"`

	// Comma separated suite names, empty keeps Go's defaults
	CipherSuites string `toml:"cipher_suites"`

	InsecureSkipVerify bool `toml:"insecure_skip_verify"`
}

func validateTLSClient(destName string, cfg *TLSClientConfig) error {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	if (cfg.CertFile == "") != (cfg.KeyFile == "") {
		return fmt.Errorf("destination '%s': tls requires both cert_file and key_file for mTLS", destName)
	}

	for _, f := range []string{cfg.CAFile, cfg.CertFile, cfg.KeyFile} {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("destination '%s': tls file: %w", destName, err)
		}
	}

	validVersions := map[string]bool{"": true, "TLS1.2": true, "TLS1.3": true}
	if !validVersions[cfg.MinVersion] {
		return fmt.Errorf("destination '%s': invalid tls min_version '%s' (valid: TLS1.2, TLS1.3)", destName, cfg.MinVersion)
	}
	if !validVersions[cfg.MaxVersion] {
		return fmt.Errorf("destination '%s': invalid tls max_version '%s' (valid: TLS1.2, TLS1.3)", destName, cfg.MaxVersion)
	}

	return nil
}
