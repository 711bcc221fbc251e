// Package config loads runtime configuration for the stories CLI.
//
// # Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed with HACKORSNOOZE_, after loading an
//     optional .env file from the working directory.
//  3. Optional config file selected with -c or -config (or the
//     HACKORSNOOZE_CONFIG variable). YAML when the name ends in .yaml or
//     .yml, JSON otherwise.
//  4. Command-line flags, which override earlier values.
//
// # Supported flags
//
//	-a string   base URL of the stories API
//	-t int      request timeout (seconds)
//	-r float    outbound requests per second
//	-n int      number of stories to request
//	-d string   local database path
//	-l string   log level
//
// # Environment
//
//	HACKORSNOOZE_BASE_URL, HACKORSNOOZE_REQUEST_TIMEOUT ("10s"),
//	HACKORSNOOZE_RPS, HACKORSNOOZE_STORIES_LIMIT, HACKORSNOOZE_DB,
//	HACKORSNOOZE_LOG_LEVEL, HACKORSNOOZE_LOG_FORMAT
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds. Keys that are absent keep their earlier value:
//
//	{
//	  "base_url": "https://hack-or-snooze-v3.herokuapp.com",
//	  "request_timeout": "10s",
//	  "requests_per_second": 5,
//	  "stories_limit": 25,
//	  "database_path": "data/hackorsnooze.db",
//	  "log_level": "debug",
//	  "log_format": "json"
//	}
package config
