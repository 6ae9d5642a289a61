// FILE: logship/src/internal/config/config.go
package config

// Config is the complete logship configuration.
type Config struct {
	// Disable all console output of the agent's own log
	Quiet bool `toml:"quiet"`

	// Periodic stats reporting
	DisableStatusReporter bool  `toml:"disable_status_reporter"`
	StatusIntervalSeconds int64 `toml:"status_interval_seconds"`

	// Agent's own logging
	Logging *LogConfig `toml:"logging"`

	// Where the agent reads log lines from
	Input *InputConfig `toml:"input"`

	// Remote backends receiving the shipped entries
	Destinations []DestinationConfig `toml:"destinations"`
}

// InputConfig selects the line source of the agent binary.
type InputConfig struct {
	// Input type: "stdin", "file", "none"
	Type string `toml:"type"`

	// File path followed when Type is "file"
	Path string `toml:"path"`

	// Source tag stamped on every entry read from this input
	Source string `toml:"source"`

	// Start following at the end of the file instead of the beginning
	FromEnd bool `toml:"from_end"`
}

// DestinationConfig describes one buffered remote backend.
type DestinationConfig struct {
	// Destination identifier (used in logs and stats)
	Name string `toml:"name"`

	// Sender type: "http", "tcp", "redis", "amqp"
	Type string `toml:"type"`

	// Default source tag for entries written without one
	Source string `toml:"source"`

	// Flush when the buffer holds more than this many entries
	MaxEntries int64 `toml:"max_entries"`

	// Flush immediately when an entry at or above this level is buffered ("none" disables)
	MinFlushLevel string `toml:"min_flush_level"`

	// Periodic flush of a non-empty buffer (0 = disabled)
	FlushIntervalMS int64 `toml:"flush_interval_ms"`

	// Upper bound for a single send
	SendTimeoutMS int64 `toml:"send_timeout_ms"`

	// Send pacing (0 = unlimited)
	MaxSendsPerSecond float64 `toml:"max_sends_per_second"`
	SendBurst         int64   `toml:"send_burst"`

	// Batch encoding
	Format *FormatConfig `toml:"format"`

	// Entries must pass every filter to be buffered
	Filters []FilterConfig `toml:"filters"`

	// Sender options, exactly one matching Type
	HTTP  *HTTPOptions  `toml:"http"`
	TCP   *TCPOptions   `toml:"tcp"`
	Redis *RedisOptions `toml:"redis"`
	AMQP  *AMQPOptions  `toml:"amqp"`
}

// FormatConfig selects and configures the batch encoder.
type FormatConfig struct {
	// Encoder type: "json", "syslog", "raw", "txt"
	Type string `toml:"type"`

	JSON   *JSONFormatOptions   `toml:"json"`
	Syslog *SyslogFormatOptions `toml:"syslog"`
	Txt    *TxtFormatOptions    `toml:"txt"`
}

type JSONFormatOptions struct {
	TimestampField string `toml:"timestamp_field"`
	LevelField     string `toml:"level_field"`
	SourceField    string `toml:"source_field"`
	MessageField   string `toml:"message_field"`
	Pretty         bool   `toml:"pretty"`
}

type SyslogFormatOptions struct {
	// Syslog facility 0-23
	Facility int64 `toml:"facility"`

	// Host field, defaults to os.Hostname()
	Hostname string `toml:"hostname"`

	// App field, defaults to the entry source
	AppName string `toml:"app_name"`
}

type TxtFormatOptions struct {
	Template        string `toml:"template"`
	TimestampFormat string `toml:"timestamp_format"`
}

// HTTPOptions is the request template of an http destination.
type HTTPOptions struct {
	URL     string            `toml:"url"`
	Method  string            `toml:"method"`
	Headers map[string]string `toml:"headers"`

	// Overrides the encoder's content type
	ContentType string `toml:"content_type"`

	// Treat any completed exchange as delivered, regardless of status code
	IgnoreStatus bool `toml:"ignore_status"`

	InsecureSkipVerify bool `toml:"insecure_skip_verify"`

	TLS  *TLSClientConfig `toml:"tls"`
	Auth *HTTPAuthConfig  `toml:"auth"`
}

// HTTPAuthConfig configures outbound request authentication.
type HTTPAuthConfig struct {
	// Auth type: "none", "basic", "bearer", "jwt"
	Type string `toml:"type"`

	Username string `toml:"username"`
	Password string `toml:"password"`
	Token    string `toml:"token"`

	// HS256 signing for "jwt"
	JWTSecret     string `toml:"jwt_secret"`
	JWTIssuer     string `toml:"jwt_issuer"`
	JWTSubject    string `toml:"jwt_subject"`
	JWTTTLSeconds int64  `toml:"jwt_ttl_seconds"`
}

type TCPOptions struct {
	// host:port
	Address          string `toml:"address"`
	DialTimeoutMS    int64  `toml:"dial_timeout_ms"`
	KeepAliveSeconds int64  `toml:"keep_alive_seconds"`

	TLS *TLSClientConfig `toml:"tls"`
}

type RedisOptions struct {
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int64  `toml:"db"`

	// List receiving one element per batch
	Key string `toml:"key"`

	// Trim the list to this many newest elements (0 = unbounded)
	MaxLen int64 `toml:"max_len"`

	TLS *TLSClientConfig `toml:"tls"`
}

type AMQPOptions struct {
	URL        string `toml:"url"`
	Exchange   string `toml:"exchange"`
	RoutingKey string `toml:"routing_key"`

	// Queue declared before the first publish (empty = none declared)
	Queue      string `toml:"queue"`
	Durable    bool   `toml:"durable"`
	Persistent bool   `toml:"persistent"`

	// Used with amqps URLs
	TLS *TLSClientConfig `toml:"tls"`
}
