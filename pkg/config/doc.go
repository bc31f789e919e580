// Package config loads plugboot's configuration.
//
// Sources are layered with koanf, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file $XDG_CONFIG_HOME/plugboot/config.toml
//  3. plugboot.toml in the working root
//  4. .env in the working root, for variables not already set
//  5. PLUGBOOT_* environment variables
//  6. explicit overrides, usually command-line flags
//
// Environment keys map to sections by their first underscore:
// PLUGBOOT_LAYOUT_VENV_NAME sets layout.venv_name.
package config
