// Package addrbook holds build-time facts about the addrbook tool.
package addrbook

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/addrbook/pkg/addrbook.Version=...".
var Version = "0.1.0"
