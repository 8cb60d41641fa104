// Package config loads the server settings from an optional config.yaml
// and BLOG_-prefixed environment variables, then validates them. The
// storage driver decides which database fields are required.
package config
