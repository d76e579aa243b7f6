// Package config loads validator profiles from a YAML file. A file holds
// named profiles (one per platform instance, like sections in an API
// credentials file); commands pick one by name.
package config

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Defaults applied to fields a profile leaves unset.
const (
	DefaultFraction       = 20
	DefaultTimeoutSeconds = 600
	DefaultIterations     = 1
)

// Profile configures one planning/validation target.
type Profile struct {
	// BaseURL of the content platform API.
	BaseURL string `yaml:"base_url"`
	// ClientID / ClientSecret authenticate the platform client. The core
	// never uses them itself; they are passed through to the caller's
	// client constructor.
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// TargetUser is the user id validator runs impersonate.
	TargetUser string `yaml:"target_user"`
	// Fraction is n: the number of slices the catalog is cut into.
	Fraction int `yaml:"fraction"`
	// TimeoutSeconds bounds a single validator run.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// Iterations is how many timed runs to execute per slice.
	Iterations int `yaml:"iterations"`
}

// Timeout returns the per-run timeout as a duration.
func (p *Profile) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Validate checks the profile after defaults are applied.
func (p *Profile) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.BaseURL, validation.Required),
		validation.Field(&p.Fraction, validation.Min(1)),
		validation.Field(&p.TimeoutSeconds, validation.Min(1)),
		validation.Field(&p.Iterations, validation.Min(1)),
	)
}

type file struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Load reads the YAML file at path and returns the named profile with
// defaults applied and validation run.
func Load(path, name string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	p, ok := f.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("config %s has no profile %q", path, name)
	}

	if p.Fraction == 0 {
		p.Fraction = DefaultFraction
	}
	if p.TimeoutSeconds == 0 {
		p.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if p.Iterations == 0 {
		p.Iterations = DefaultIterations
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	return &p, nil
}
