// Package config provides configuration structures and utilities for ffufai.
// It defines the tool's own options, the optional .ffufai YAML file and the
// one-time resolution of the model provider from the environment.
package config
