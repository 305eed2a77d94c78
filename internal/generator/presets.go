package generator

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Presets is a named set of generator configurations.
type Presets map[string]Options

// Names returns the preset names in sorted order.
func (p Presets) Names() []string {
	return slices.Sorted(maps.Keys(p))
}

// DefaultPresets returns the built-in preset set: modern desktop and mobile
// profiles, per operating system, and per browser on each desktop OS.
func DefaultPresets() Presets {
	desktop := []string{DeviceDesktop}
	chromeFirefox := []string{BrowserChrome, BrowserFirefox}
	return Presets{
		"MODERN_DESKTOP": {Browsers: chromeFirefox, Devices: desktop},
		"MODERN_MOBILE":  {Browsers: chromeFirefox, Devices: []string{DeviceMobile}},
		"MODERN_ANDROID": {Browsers: chromeFirefox, OperatingSystems: []string{OSAndroid}, Devices: []string{DeviceMobile}},

		"MODERN_LINUX":         {Browsers: chromeFirefox, OperatingSystems: []string{OSLinux}, Devices: desktop},
		"MODERN_LINUX_CHROME":  {Browsers: []string{BrowserChrome}, OperatingSystems: []string{OSLinux}, Devices: desktop},
		"MODERN_LINUX_FIREFOX": {Browsers: []string{BrowserFirefox}, OperatingSystems: []string{OSLinux}, Devices: desktop},

		"MODERN_MACOS":         {Browsers: chromeFirefox, OperatingSystems: []string{OSMacOS}, Devices: desktop},
		"MODERN_MACOS_CHROME":  {Browsers: []string{BrowserChrome}, OperatingSystems: []string{OSMacOS}, Devices: desktop},
		"MODERN_MACOS_FIREFOX": {Browsers: []string{BrowserFirefox}, OperatingSystems: []string{OSMacOS}, Devices: desktop},

		"MODERN_WINDOWS":         {Browsers: chromeFirefox, OperatingSystems: []string{OSWindows}, Devices: desktop},
		"MODERN_WINDOWS_CHROME":  {Browsers: []string{BrowserChrome}, OperatingSystems: []string{OSWindows}, Devices: desktop},
		"MODERN_WINDOWS_FIREFOX": {Browsers: []string{BrowserFirefox}, OperatingSystems: []string{OSWindows}, Devices: desktop},
	}
}

// presetFile is the on-disk layout of a preset file.
type presetFile struct {
	Presets map[string]Options `yaml:"presets"`
}

// LoadPresets reads a YAML preset file of the form:
//
//	presets:
//	  MODERN_DESKTOP:
//	    browsers: [chrome, firefox]
//	    devices: [desktop]
//
// Every preset is validated; unknown keys are rejected.
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}
	return ParsePresets(data)
}

// ParsePresets decodes and validates preset YAML.
func ParsePresets(data []byte) (Presets, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file presetFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	if len(file.Presets) == 0 {
		return nil, fmt.Errorf("preset file defines no presets")
	}
	for name, opts := range file.Presets {
		if err := opts.Validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
	}
	return Presets(file.Presets), nil
}
