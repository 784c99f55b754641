// Package config loads runtime configuration for the taskctl client.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//
//  2. TASKCTL_SERVER_URL, TASKCTL_REQUEST_TIMEOUT, TASKCTL_PREFS_PATH and
//     TASKCTL_OWNER_ID.
//
//  3. A JSON or YAML file given with -c or --config:
//
//     server_url: http://127.0.0.1:8080
//     request_timeout: 5s
//     prefs_path: /home/me/.taskctl.db
//     owner_id: 0d8f...
//
//  4. taskctl's persistent flags.
package config
