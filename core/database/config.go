package database

import "time"

// Config holds configuration for the lookup cache database.
type Config struct {
	// Enabled turns the lookup cache on. When false no state is persisted.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:"bibcleaner-cache.db"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// TimeoutSeconds is the connection and I/O timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// TTLHours is how long a cached document stays fresh. Zero or less keeps documents forever.
	TTLHours int `mapstructure:"ttl_hours" default:"168"`
}

// TTL returns how long a cached document stays fresh, or 0 when documents never expire.
func (c Config) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return 0
	}
	return time.Duration(c.TTLHours) * time.Hour
}
