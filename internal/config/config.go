package config

// Config holds all configuration for the analysis server
type Config struct {
	// Transport selects how tool calls arrive: "stdio" or "http"
	Transport string `yaml:"transport"`

	// ListenAddr is the address the HTTP transport binds to
	ListenAddr string `yaml:"listenAddr"`

	// EndpointPath is the HTTP path serving the tool endpoint
	EndpointPath string `yaml:"endpointPath"`

	// LogLevel is the logging level (debug, info, warn, error)
	LogLevel string `yaml:"logLevel"`

	// StableSlopeBelow is the absolute trend slope under which a series
	// counts as stable
	StableSlopeBelow float64 `yaml:"stableSlopeBelow"`

	// MaxForecastPoints caps how far trend tools extrapolate
	MaxForecastPoints int `yaml:"maxForecastPoints"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Transport:         "stdio",
		ListenAddr:        ":8080",
		EndpointPath:      "/mcp",
		LogLevel:          "info",
		StableSlopeBelow:  0.05,
		MaxForecastPoints: 10,
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Transport != "stdio" && c.Transport != "http" {
		return NewConfigError("Transport must be \"stdio\" or \"http\"")
	}

	if c.Transport == "http" && c.ListenAddr == "" {
		return NewConfigError("ListenAddr must be set for the http transport")
	}

	if c.EndpointPath == "" || c.EndpointPath[0] != '/' {
		return NewConfigError("EndpointPath must start with \"/\"")
	}

	if c.StableSlopeBelow < 0 {
		return NewConfigError("StableSlopeBelow must not be negative")
	}

	if c.MaxForecastPoints < 1 || c.MaxForecastPoints > 1000 {
		return NewConfigError("MaxForecastPoints must be between 1 and 1000")
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	message string
}

// NewConfigError creates a new configuration error
func NewConfigError(message string) *ConfigError {
	return &ConfigError{message: message}
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return e.message
}
