// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/invowk/swift-run/internal/config"
)

// buildConfigurationValue is a pflag.Value that rejects unknown build
// configurations at parse time, so a typo never reaches the build driver.
type buildConfigurationValue struct {
	target *config.BuildConfiguration
}

func newBuildConfigurationValue(target *config.BuildConfiguration) *buildConfigurationValue {
	return &buildConfigurationValue{target: target}
}

// String returns the current value.
func (v *buildConfigurationValue) String() string {
	if v.target == nil {
		return ""
	}
	return string(*v.target)
}

// Set validates and stores s.
func (v *buildConfigurationValue) Set(s string) error {
	candidate := config.BuildConfiguration(s)
	if valid, errs := candidate.IsValid(); !valid {
		return errors.Join(errs...)
	}
	*v.target = candidate
	return nil
}

// Type names the value in help output.
func (v *buildConfigurationValue) Type() string { return "configuration" }
