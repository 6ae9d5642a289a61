// FILE: logship/src/internal/config/validation.go
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"logship/src/internal/core"

	lconfig "github.com/lixenwraith/config"
)

// Validate is the centralized validator for the entire configuration.
// It also fills unset destination fields with their defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.Logging == nil {
		cfg.Logging = DefaultLogConfig()
	}
	if err := validateLogConfig(cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if cfg.Input == nil {
		cfg.Input = &InputConfig{Type: "stdin"}
	}
	if err := validateInput(cfg.Input); err != nil {
		return fmt.Errorf("input config: %w", err)
	}

	if cfg.StatusIntervalSeconds <= 0 {
		cfg.StatusIntervalSeconds = 30
	}

	if len(cfg.Destinations) == 0 {
		return fmt.Errorf("no destinations configured")
	}

	names := make(map[string]bool)
	for i := range cfg.Destinations {
		if err := validateDestination(i, &cfg.Destinations[i], names); err != nil {
			return err
		}
	}

	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	validOutputs := map[string]bool{
		"file": true, "stdout": true, "stderr": true,
		"both": true, "none": true,
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	if cfg.Console != nil {
		validTargets := map[string]bool{
			"stdout": true, "stderr": true, "split": true, "": true,
		}
		if !validTargets[cfg.Console.Target] {
			return fmt.Errorf("invalid console target: %s", cfg.Console.Target)
		}

		validFormats := map[string]bool{
			"txt": true, "json": true, "": true,
		}
		if !validFormats[cfg.Console.Format] {
			return fmt.Errorf("invalid console format: %s", cfg.Console.Format)
		}
	}

	return nil
}

func validateInput(cfg *InputConfig) error {
	switch cfg.Type {
	case "", "stdin":
		cfg.Type = "stdin"
	case "file":
		if err := lconfig.NonEmpty(cfg.Path); err != nil {
			return fmt.Errorf("file input requires 'path'")
		}
		if strings.Contains(cfg.Path, "..") {
			return fmt.Errorf("path contains directory traversal: %s", cfg.Path)
		}
	case "none":
	default:
		return fmt.Errorf("unknown input type '%s' (valid: stdin, file, none)", cfg.Type)
	}

	if cfg.Source == "" {
		cfg.Source = cfg.Type
	}
	return nil
}

func validateDestination(index int, d *DestinationConfig, names map[string]bool) error {
	if err := lconfig.NonEmpty(d.Name); err != nil {
		return fmt.Errorf("destination %d: missing name", index)
	}
	if names[d.Name] {
		return fmt.Errorf("destination %d: duplicate name '%s'", index, d.Name)
	}
	names[d.Name] = true

	if d.MaxEntries <= 0 {
		d.MaxEntries = core.DefaultMaxEntries
	}
	if d.SendTimeoutMS <= 0 {
		d.SendTimeoutMS = core.DefaultSendTimeoutMS
	}
	if d.FlushIntervalMS < 0 {
		return fmt.Errorf("destination '%s': flush_interval_ms cannot be negative", d.Name)
	}
	if d.MaxSendsPerSecond < 0 {
		return fmt.Errorf("destination '%s': max_sends_per_second cannot be negative", d.Name)
	}
	if d.MaxSendsPerSecond > 0 && d.SendBurst <= 0 {
		d.SendBurst = 1
	}
	if d.MinFlushLevel == "" {
		d.MinFlushLevel = "none"
	}
	if _, err := core.ParseLevel(d.MinFlushLevel); err != nil {
		return fmt.Errorf("destination '%s': %w", d.Name, err)
	}

	for j := range d.Filters {
		if err := validateFilter(d.Name, j, &d.Filters[j]); err != nil {
			return err
		}
	}

	if err := validateFormat(d); err != nil {
		return fmt.Errorf("destination '%s': %w", d.Name, err)
	}

	if err := lconfig.NonEmpty(d.Type); err != nil {
		return fmt.Errorf("destination '%s': missing type", d.Name)
	}

	// Exactly one sender block, matching the type
	populated := 0
	var populatedType string
	if d.HTTP != nil {
		populated++
		populatedType = "http"
	}
	if d.TCP != nil {
		populated++
		populatedType = "tcp"
	}
	if d.Redis != nil {
		populated++
		populatedType = "redis"
	}
	if d.AMQP != nil {
		populated++
		populatedType = "amqp"
	}

	if populated == 0 {
		return fmt.Errorf("destination '%s': no configuration provided for type '%s'", d.Name, d.Type)
	}
	if populated > 1 {
		return fmt.Errorf("destination '%s': multiple sender configurations provided, only one allowed", d.Name)
	}
	if populatedType != d.Type {
		return fmt.Errorf("destination '%s': type mismatch - type is '%s' but config is for '%s'",
			d.Name, d.Type, populatedType)
	}

	switch d.Type {
	case "http":
		return validateHTTPOptions(d.Name, d.HTTP)
	case "tcp":
		return validateTCPOptions(d.Name, d.TCP)
	case "redis":
		return validateRedisOptions(d.Name, d.Redis)
	case "amqp":
		return validateAMQPOptions(d.Name, d.AMQP)
	default:
		return fmt.Errorf("destination '%s': unknown type '%s'", d.Name, d.Type)
	}
}

func validateFormat(d *DestinationConfig) error {
	if d.Format == nil {
		d.Format = &FormatConfig{}
	}
	if d.Format.Type == "" {
		d.Format.Type = "json"
	}

	switch d.Format.Type {
	case "json":
		if d.Format.JSON == nil {
			d.Format.JSON = &JSONFormatOptions{}
		}
		opts := d.Format.JSON
		if opts.TimestampField == "" {
			opts.TimestampField = "timestamp"
		}
		if opts.LevelField == "" {
			opts.LevelField = "level"
		}
		if opts.SourceField == "" {
			opts.SourceField = "source"
		}
		if opts.MessageField == "" {
			opts.MessageField = "message"
		}

	case "syslog":
		if d.Format.Syslog == nil {
			d.Format.Syslog = &SyslogFormatOptions{Facility: 1}
		}
		if d.Format.Syslog.Facility < 0 || d.Format.Syslog.Facility > 23 {
			return fmt.Errorf("syslog facility must be 0-23: %d", d.Format.Syslog.Facility)
		}

	case "txt":
		if d.Format.Txt == nil {
			d.Format.Txt = &TxtFormatOptions{}
		}
		if d.Format.Txt.Template == "" {
			d.Format.Txt.Template = DefaultTxtTemplate
		}
		if d.Format.Txt.TimestampFormat == "" {
			d.Format.Txt.TimestampFormat = DefaultTxtTimestampFormat
		}

	case "raw":

	default:
		return fmt.Errorf("unknown format type '%s' (valid: json, syslog, raw, txt)", d.Format.Type)
	}

	return nil
}

// Default txt encoder settings
const (
	DefaultTxtTemplate        = "[{{.Timestamp | FmtTime}}] [{{.Level | ToUpper}}] {{.Source}} - {{.Message}}{{ if .Fields }} {{.Fields}}{{ end }}"
	DefaultTxtTimestampFormat = "2006-01-02T15:04:05.000Z07:00"
)

func validateHTTPOptions(destName string, opts *HTTPOptions) error {
	if err := lconfig.NonEmpty(opts.URL); err != nil {
		return fmt.Errorf("destination '%s': http requires 'url'", destName)
	}

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return fmt.Errorf("destination '%s': invalid URL: %w", destName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("destination '%s': URL must use http or https scheme", destName)
	}
	isHTTPS := parsedURL.Scheme == "https"

	if opts.Method == "" {
		opts.Method = "POST"
	}
	opts.Method = strings.ToUpper(opts.Method)
	switch opts.Method {
	case "POST", "PUT", "PATCH":
	default:
		return fmt.Errorf("destination '%s': unsupported method '%s' (valid: POST, PUT, PATCH)", destName, opts.Method)
	}

	if opts.Headers == nil {
		opts.Headers = make(map[string]string)
	}

	if opts.TLS != nil && opts.TLS.Enabled && !isHTTPS {
		return fmt.Errorf("destination '%s': tls requires an https URL", destName)
	}
	if err := validateTLSClient(destName, opts.TLS); err != nil {
		return err
	}

	if opts.Auth == nil {
		return nil
	}

	switch opts.Auth.Type {
	case "basic":
		if opts.Auth.Username == "" || opts.Auth.Password == "" {
			return fmt.Errorf("destination '%s': username and password required for basic auth", destName)
		}
		if !isHTTPS && !opts.InsecureSkipVerify {
			return fmt.Errorf("destination '%s': basic auth requires HTTPS (security: credentials would be sent in plaintext)", destName)
		}

	case "bearer":
		if err := lconfig.NonEmpty(opts.Auth.Token); err != nil {
			return fmt.Errorf("destination '%s': token required for bearer auth", destName)
		}

	case "jwt":
		if len(opts.Auth.JWTSecret) < 16 {
			return fmt.Errorf("destination '%s': jwt_secret must be at least 16 bytes", destName)
		}
		if opts.Auth.JWTTTLSeconds <= 0 {
			opts.Auth.JWTTTLSeconds = 300
		}
		if opts.Auth.JWTIssuer == "" {
			opts.Auth.JWTIssuer = core.DefaultSource
		}

	case "none", "":
		opts.Auth.Username = ""
		opts.Auth.Password = ""
		opts.Auth.Token = ""
		opts.Auth.JWTSecret = ""

	default:
		return fmt.Errorf("destination '%s': invalid auth type '%s' (valid: none, basic, bearer, jwt)",
			destName, opts.Auth.Type)
	}

	return nil
}

func validateTCPOptions(destName string, opts *TCPOptions) error {
	if err := lconfig.NonEmpty(opts.Address); err != nil {
		return fmt.Errorf("destination '%s': tcp requires 'address'", destName)
	}

	host, portStr, err := net.SplitHostPort(opts.Address)
	if err != nil {
		return fmt.Errorf("destination '%s': invalid address format (expected host:port): %w", destName, err)
	}
	if host == "" {
		return fmt.Errorf("destination '%s': tcp address requires a host", destName)
	}
	port, err := strconv.ParseInt(portStr, 10, 64)
	if err != nil {
		return fmt.Errorf("destination '%s': invalid port '%s'", destName, portStr)
	}
	if err := lconfig.Port(port); err != nil {
		return fmt.Errorf("destination '%s': %w", destName, err)
	}

	if opts.DialTimeoutMS <= 0 {
		opts.DialTimeoutMS = 10000
	}
	if opts.KeepAliveSeconds <= 0 {
		opts.KeepAliveSeconds = 30
	}
	return validateTLSClient(destName, opts.TLS)
}

func validateRedisOptions(destName string, opts *RedisOptions) error {
	if err := lconfig.NonEmpty(opts.Address); err != nil {
		return fmt.Errorf("destination '%s': redis requires 'address'", destName)
	}
	if _, _, err := net.SplitHostPort(opts.Address); err != nil {
		return fmt.Errorf("destination '%s': invalid redis address: %w", destName, err)
	}
	if opts.Key == "" {
		opts.Key = "logship:" + destName
	}
	if opts.DB < 0 {
		return fmt.Errorf("destination '%s': redis db cannot be negative", destName)
	}
	if opts.MaxLen < 0 {
		return fmt.Errorf("destination '%s': redis max_len cannot be negative", destName)
	}
	return validateTLSClient(destName, opts.TLS)
}

func validateAMQPOptions(destName string, opts *AMQPOptions) error {
	if err := lconfig.NonEmpty(opts.URL); err != nil {
		return fmt.Errorf("destination '%s': amqp requires 'url'", destName)
	}

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return fmt.Errorf("destination '%s': invalid amqp URL: %w", destName, err)
	}
	if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
		return fmt.Errorf("destination '%s': URL must use amqp or amqps scheme", destName)
	}

	if opts.RoutingKey == "" {
		opts.RoutingKey = opts.Queue
	}
	if opts.Exchange == "" && opts.RoutingKey == "" {
		return fmt.Errorf("destination '%s': amqp requires 'queue' or 'routing_key' when publishing to the default exchange", destName)
	}
	if opts.TLS != nil && opts.TLS.Enabled && parsedURL.Scheme != "amqps" {
		return fmt.Errorf("destination '%s': tls requires an amqps URL", destName)
	}
	return validateTLSClient(destName, opts.TLS)
}
