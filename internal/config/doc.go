// Package config provides configuration management for the globcheck CLI.
//
// This package handles loading, writing, and validating globcheck's own
// configuration file. It is distinct from the glob option documents the CLI
// validates.
//
// # Configuration File
//
// The default configuration file location is ~/.config/globcheck/config.yaml
// (or $GLOBCHECK_CONFIG_DIR/config.yaml). A config.yaml in the working
// directory takes precedence. The file uses YAML format:
//
//	version: 1
//	format: text          # or json
//	strict: false         # fail on warnings too
//	suggest_unknown: true # report unknown option names
//	disallow:             # options rejected even though glob knows them
//	  - follow
//	max_file_size: 1048576
//
// Every key can be overridden from the environment with the GLOBCHECK_
// prefix, e.g. GLOBCHECK_STRICT=true.
//
// # Loading Configuration
//
// Call [Init] once, then [Load] with an empty path to search the default
// locations with graceful fallback to defaults:
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//
// An explicit path that does not exist is an error marked with
// errors.ErrNotFound from internal/errors.
//
// # Validation
//
// All loaded configurations are validated automatically; the first problem
// is returned wrapped as "validating config: ...". You can also validate a
// configuration manually:
//
//	errs := config.Validate(cfg)
//	for _, e := range errs {
//	    fmt.Println(e)
//	}
package config
