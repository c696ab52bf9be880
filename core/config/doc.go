// Package config provides configuration management for bibcleaner.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults live in `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: lookup cache connection and TTL
//   - Storage: S3/MinIO credentials, bucket and prefix for uploads
//   - Log: Logging level and format
//   - DBLP: index endpoints, request spacing, timeouts
//   - Clean: record limit, author budget, ambiguity threshold, key field
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.DBLP.SearchURL)
package config
