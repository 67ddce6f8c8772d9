// Package config loads the server and worker settings from an optional .env
// file, TASKAPI_* environment variables (with the unprefixed legacy names as
// fallbacks) and an optional config.yaml, then validates them once at startup.
package config
