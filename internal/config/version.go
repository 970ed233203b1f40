package config

// Version is the secops-server binary version.
// Set at build time via: -ldflags "-X github.com/cephas20k/secops/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
