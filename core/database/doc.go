// Package database opens the optional lookup cache database.
//
// It wraps GORM to configure either a local SQLite file (the default) or a
// shared MySQL server from the application's configuration. The cache is
// disabled unless database.enabled is set, in which case a run persists
// nothing but its two output files.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
