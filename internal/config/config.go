// Package config loads the optional YAML configuration file and merges it
// with command line flags, flags taking precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/timrogers/litra-autotoggle"
)

// Config mirrors the YAML file. Booleans and the delay are pointers so that
// an absent key is distinguishable from an explicit false or zero.
type Config struct {
	SerialNumber  string  `yaml:"serial_number"`
	DevicePath    string  `yaml:"device_path"`
	DeviceType    string  `yaml:"device_type"`
	RequireDevice *bool   `yaml:"require_device"`
	VideoDevice   string  `yaml:"video_device"`
	Delay         *uint64 `yaml:"delay"`
	BackLight     *bool   `yaml:"back_light"`
	Verbose       *bool   `yaml:"verbose"`
}

// Options is the merged runtime configuration handed to the control loop.
type Options struct {
	SerialNumber  string
	DevicePath    string
	DeviceType    string
	RequireDevice bool
	VideoDevice   string
	Delay         time.Duration
	BackLight     bool
	Verbose       bool
}

// Load reads and validates a configuration file. Unknown keys are rejected,
// and the file on its own must already satisfy the single-filter rule.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty file configures nothing.
			return &Config{}, nil
		}
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if _, err := autotoggle.NewDeviceFilter(cfg.SerialNumber, cfg.DevicePath, cfg.DeviceType); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	return &cfg, nil
}

// Merge fills in the fields the command line left unset from the file.
// delaySet reports whether the delay flag was given explicitly: a file
// delay never overrides an explicit flag, even one equal to the default.
func Merge(opts Options, delaySet bool, file *Config) Options {
	if file == nil {
		return opts
	}

	if opts.SerialNumber == "" {
		opts.SerialNumber = file.SerialNumber
	}
	if opts.DevicePath == "" {
		opts.DevicePath = file.DevicePath
	}
	if opts.DeviceType == "" {
		opts.DeviceType = file.DeviceType
	}
	if !opts.RequireDevice && file.RequireDevice != nil {
		opts.RequireDevice = *file.RequireDevice
	}
	if opts.VideoDevice == "" {
		opts.VideoDevice = file.VideoDevice
	}
	if !delaySet && file.Delay != nil {
		opts.Delay = time.Duration(*file.Delay) * time.Millisecond
	}
	if !opts.BackLight && file.BackLight != nil {
		opts.BackLight = *file.BackLight
	}
	if !opts.Verbose && file.Verbose != nil {
		opts.Verbose = *file.Verbose
	}
	return opts
}
