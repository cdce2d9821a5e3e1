// Package config defines the tankmate-cli configuration file
// (~/.tankmate/config.yaml) and how it is layered with environment
// variables and flags.
package config
