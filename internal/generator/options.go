package generator

import (
	"fmt"
	"slices"
)

// Browser, operating system and device identifiers understood by the header
// generator.
const (
	BrowserChrome  = "chrome"
	BrowserFirefox = "firefox"
	BrowserSafari  = "safari"
	BrowserEdge    = "edge"

	OSWindows = "windows"
	OSMacOS   = "macos"
	OSLinux   = "linux"
	OSAndroid = "android"
	OSIOS     = "ios"

	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
)

// Options configures a header generator. Empty lists mean "any".
type Options struct {
	Browsers         []string `yaml:"browsers,omitempty"`
	OperatingSystems []string `yaml:"operatingSystems,omitempty"`
	Devices          []string `yaml:"devices,omitempty"`
	Locales          []string `yaml:"locales,omitempty"`
	// HTTPVersion is "1" or "2"; it controls header name casing.
	HTTPVersion string `yaml:"httpVersion,omitempty"`
}

var (
	knownBrowsers = []string{BrowserChrome, BrowserFirefox, BrowserSafari, BrowserEdge}
	knownOS       = []string{OSWindows, OSMacOS, OSLinux, OSAndroid, OSIOS}
	knownDevices  = []string{DeviceDesktop, DeviceMobile}

	deviceOS = map[string][]string{
		DeviceDesktop: {OSWindows, OSMacOS, OSLinux},
		DeviceMobile:  {OSAndroid, OSIOS},
	}
	osBrowsers = map[string][]string{
		OSWindows: {BrowserChrome, BrowserFirefox, BrowserEdge},
		OSMacOS:   {BrowserChrome, BrowserFirefox, BrowserSafari, BrowserEdge},
		OSLinux:   {BrowserChrome, BrowserFirefox},
		OSAndroid: {BrowserChrome, BrowserFirefox, BrowserEdge},
		OSIOS:     {BrowserSafari, BrowserChrome},
	}
)

// DefaultOptions returns the configuration used when no options are given.
func DefaultOptions() Options {
	return Options{
		Browsers:         slices.Clone(knownBrowsers),
		OperatingSystems: slices.Clone(knownOS),
		Devices:          slices.Clone(knownDevices),
		Locales:          []string{"en-US"},
		HTTPVersion:      "2",
	}
}

// withDefaults fills every empty field from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if len(o.Browsers) == 0 {
		o.Browsers = d.Browsers
	}
	if len(o.OperatingSystems) == 0 {
		o.OperatingSystems = d.OperatingSystems
	}
	if len(o.Devices) == 0 {
		o.Devices = d.Devices
	}
	if len(o.Locales) == 0 {
		o.Locales = d.Locales
	}
	if o.HTTPVersion == "" {
		o.HTTPVersion = d.HTTPVersion
	}
	return o
}

// Validate checks that every identifier is known and that at least one
// device/OS/browser combination satisfies the options.
func (o Options) Validate() error {
	o = o.withDefaults()
	if err := checkKnown("browser", o.Browsers, knownBrowsers); err != nil {
		return err
	}
	if err := checkKnown("operating system", o.OperatingSystems, knownOS); err != nil {
		return err
	}
	if err := checkKnown("device", o.Devices, knownDevices); err != nil {
		return err
	}
	if o.HTTPVersion != "1" && o.HTTPVersion != "2" {
		return fmt.Errorf("unsupported HTTP version %q", o.HTTPVersion)
	}
	if len(o.combinations()) == 0 {
		return fmt.Errorf("no browser/OS/device combination satisfies the options")
	}
	return nil
}

func checkKnown(kind string, values, known []string) error {
	for _, v := range values {
		if !slices.Contains(known, v) {
			return fmt.Errorf("unknown %s %q", kind, v)
		}
	}
	return nil
}

// fingerprint is one compatible device/OS/browser triple.
type fingerprint struct {
	device  string
	os      string
	browser string
}

// combinations enumerates every compatible triple allowed by the options.
func (o Options) combinations() []fingerprint {
	var out []fingerprint
	for _, device := range o.Devices {
		for _, osName := range deviceOS[device] {
			if !slices.Contains(o.OperatingSystems, osName) {
				continue
			}
			for _, browser := range osBrowsers[osName] {
				if slices.Contains(o.Browsers, browser) {
					out = append(out, fingerprint{device: device, os: osName, browser: browser})
				}
			}
		}
	}
	return out
}
