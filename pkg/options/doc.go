// Package options loads per-handler configuration for workflow views from
// JSON, YAML or TOML documents and keeps a registry of named dispatcher
// factories.
package options
