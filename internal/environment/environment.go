// Package environment resolves the hosted-build descriptor from process
// environment variables once at startup.
package environment

import "os"

const (
	// EnvHosted is set to "True" by the documentation hosting service.
	EnvHosted = "READTHEDOCS"
	// EnvVersion names the version slug being built on the hosting service.
	EnvVersion = "READTHEDOCS_VERSION"

	hostedValue = "True"
)

// Channel is the release-stability label used to pick sibling documentation.
type Channel string

const (
	ChannelStable Channel = "stable"
	ChannelLatest Channel = "latest"
)

// String implements fmt.Stringer.
func (c Channel) String() string { return string(c) }

// ParseChannel clamps a raw version slug. An unset slug means latest; any
// value other than exactly "stable" or "latest" means stable.
func ParseChannel(raw string, set bool) Channel {
	if !set {
		return ChannelLatest
	}
	switch Channel(raw) {
	case ChannelStable, ChannelLatest:
		return Channel(raw)
	default:
		return ChannelStable
	}
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Descriptor is computed once and never mutated.
type Descriptor struct {
	Hosted  bool
	Channel Channel
}

// Resolve builds a Descriptor from lookup.
func Resolve(lookup LookupFunc) Descriptor {
	hosted, _ := lookup(EnvHosted)
	version, set := lookup(EnvVersion)
	return Descriptor{
		Hosted:  hosted == hostedValue,
		Channel: ParseChannel(version, set),
	}
}

// FromOS resolves the descriptor from the current process environment.
func FromOS() Descriptor {
	return Resolve(os.LookupEnv)
}

// Params is the named-field form handed to the sidebar generator.
type Params struct {
	OnRTD      bool    `yaml:"on_rtd" json:"on_rtd"`
	RTDVersion Channel `yaml:"rtd_version" json:"rtd_version"`
}

// Params returns the descriptor as named fields.
func (d Descriptor) Params() Params {
	return Params{OnRTD: d.Hosted, RTDVersion: d.Channel}
}
