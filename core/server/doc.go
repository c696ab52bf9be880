// Package server holds the HTTP server configuration.
//
// While the serve command handles the server startup, this package defines
// the listen port, the optional API key, the request body limit and the
// choice policy applied to ambiguous matches of HTTP requests.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings.
package server
