package config

// Version is the credtrail binary version.
// Set at build time via: -ldflags "-X github.com/credtrailhq/credtrail/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
