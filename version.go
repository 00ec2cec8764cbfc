package wayfinder

// Version is the release of the guide, overridden at link time with
// -ldflags "-X github.com/aretw0/wayfinder.Version=...".
var Version = "0.1.0-dev"
