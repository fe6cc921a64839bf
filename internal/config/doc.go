// Package config loads and merges the application configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// Sources are merged with mergo in priority order (environment first,
// then flags, then the JSON file for fields still unset), defaults are
// applied, and the final configuration is validated once at startup.
// The token signing secret and the token lifetime live here and are
// passed into the auth service at construction time, never read ad hoc
// at call sites.
package config
