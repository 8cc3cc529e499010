package config

import "errors"

var (
	// ErrLoadConfig wraps failures reading .env, the YAML file named by
	// ROUTEFIX_CONFIG, or the ROUTEFIX_ environment.
	ErrLoadConfig = errors.New("config: cannot load")
	// ErrInvalidConfig marks values that loaded but cannot be used, such as
	// a metrics_file that is a directory.
	ErrInvalidConfig = errors.New("config: invalid value")
)
