// Package confloader loads layered configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Overrides (command-line flags, set via LoadMap)
//  2. Environment variables (TANKMATE_SECTION_KEY)
//  3. The YAML configuration file
//  4. Defaults already present in the target struct
//
// Watcher reports writes to the configuration file so long-running
// sessions can re-apply settings without restarting.
package confloader
