// Package config manages user-level settings stored at
// ~/.extpack/config.yaml: the extension root directory, the host
// application version, and network timeouts. Values can be overridden
// through EXTPACK_* environment variables.
package config
