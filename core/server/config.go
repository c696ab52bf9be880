package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB bounds the size of an uploaded BibTeX file.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"8"`
	// ChoicePolicy settles ambiguous matches for HTTP requests: original or first.
	ChoicePolicy string `mapstructure:"choice_policy" default:"original"`
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 8 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
