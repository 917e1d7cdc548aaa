package config

import "errors"

// ErrNoServerAddress is returned when no API endpoint was configured via
// flags, environment, or the JSON config file.
var ErrNoServerAddress = errors.New("server address is not set")
