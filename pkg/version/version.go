// Package version contains the symbolic version of the fanpath tools.
package version

// Version is the symbolic version of this build. Override at build time with:
//
//	-ldflags "-X github.com/fanpath-project/fanpath/pkg/version.Version=$(git describe --tags)"
var Version = "v0.1.0"
