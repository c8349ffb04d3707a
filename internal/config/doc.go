// Package config provides 12-factor configuration for the glasshost binary.
//
// Configuration is loaded from GLASSHOST_* environment variables with
// sensible defaults. CLI flags can override environment variables for
// development flexibility.
//
// Configuration Sections:
//   - Plugins: discovery root, provider interpreter, readiness timeout
//   - WebView: devtools, transparency, user agent
//   - Logging: log level and output format
//
// Environment Variables:
//   - GLASSHOST_PLUGINS_DIR, GLASSHOST_PYTHON, GLASSHOST_READY_TIMEOUT
//   - GLASSHOST_DEVTOOLS, GLASSHOST_TRANSPARENT, GLASSHOST_USER_AGENT
//   - GLASSHOST_LOG_LEVEL, GLASSHOST_LOG_DEV
package config
