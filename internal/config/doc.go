// Package config resolves the optional .envup project configuration.
//
// Supported file names, probed in priority order in the project root:
// .envup.jsonc, .envup.json, .envup.yaml, .envup.yml. JSONC files are
// handled via github.com/tidwall/jsonc (comments and trailing commas
// stripped before standard JSON parsing); YAML files via gopkg.in/yaml.v3.
//
// Absence of a config file is the normal case: Default() reproduces the
// unconfigured bootstrap behavior (.venv, requirements.txt, python3).
package config
