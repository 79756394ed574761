// Package config loads and merges sensei configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (SENSEI_PROVIDER, SENSEI_MODEL, SENSEI_FAIL_ON, etc.)
//  3. Config file ($XDG_CONFIG_HOME/sensei/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config] and [SetField] to update a single
// key in the config file. [DefaultKnowledgePath] resolves the default
// location of the convention knowledge database.
package config
