// Package config provides configuration structures and utilities for docscore.
// It defines fetch, extraction, AI supplement, scoring and report options,
// the YAML configuration file format, and validation of all of them.
package config
