package generator

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// HeaderGenerator produces realistic browser request headers for a randomly
// chosen device/OS/browser fingerprint permitted by its options.
//
// Each instance owns its random source, so instances are independent but an
// individual instance must not be shared across goroutines.
type HeaderGenerator struct {
	opts         Options
	fingerprints []fingerprint
	rng          *rand.Rand
}

// Verify interface compliance.
var _ Generator = (*HeaderGenerator)(nil)

// NewHeaderGenerator creates a generator for the given options. A nil opts
// selects DefaultOptions.
func NewHeaderGenerator(opts *Options) (*HeaderGenerator, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	o = o.withDefaults()
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator options: %w", err)
	}
	return &HeaderGenerator{
		opts:         o,
		fingerprints: o.combinations(),
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}, nil
}

// Generate returns one header set.
func (g *HeaderGenerator) Generate() (Record, error) {
	fp := g.fingerprints[g.rng.IntN(len(g.fingerprints))]
	major := g.browserVersion(fp.browser)

	headers := []struct{ name, value string }{
		{"sec-ch-ua", g.secCHUA(fp.browser, major)},
		{"sec-ch-ua-mobile", chromiumOnly(fp.browser, boolHint(fp.device == DeviceMobile))},
		{"sec-ch-ua-platform", chromiumOnly(fp.browser, platformHint(fp.os))},
		{"upgrade-insecure-requests", "1"},
		{"user-agent", g.userAgent(fp, major)},
		{"accept", acceptFor(fp.browser)},
		{"sec-fetch-site", "none"},
		{"sec-fetch-mode", "navigate"},
		{"sec-fetch-user", "?1"},
		{"sec-fetch-dest", "document"},
		{"accept-encoding", encodingFor(fp.browser)},
		{"accept-language", g.acceptLanguage()},
	}

	record := make(Record, len(headers))
	for _, h := range headers {
		if h.value == "" {
			continue
		}
		record[g.headerName(h.name)] = h.value
	}
	return record, nil
}

// headerName applies HTTP/1 title casing when configured; HTTP/2 names stay
// lower-case.
func (g *HeaderGenerator) headerName(name string) string {
	if g.opts.HTTPVersion == "2" {
		return name
	}
	parts := strings.Split(name, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "-")
}

func (g *HeaderGenerator) browserVersion(browser string) int {
	switch browser {
	case BrowserFirefox:
		return 128 + g.rng.IntN(14)
	case BrowserSafari:
		return 16 + g.rng.IntN(3)
	default:
		return 124 + g.rng.IntN(16)
	}
}

func (g *HeaderGenerator) userAgent(fp fingerprint, major int) string {
	var platform string
	switch fp.os {
	case OSWindows:
		platform = "Windows NT 10.0; Win64; x64"
	case OSMacOS:
		platform = "Macintosh; Intel Mac OS X 10_15_7"
	case OSLinux:
		platform = "X11; Linux x86_64"
	case OSAndroid:
		platform = fmt.Sprintf("Linux; Android %d; K", 10+g.rng.IntN(5))
	case OSIOS:
		platform = fmt.Sprintf("iPhone; CPU iPhone OS %d_%d like Mac OS X", 16+g.rng.IntN(3), g.rng.IntN(6))
	}

	mobile := ""
	if fp.device == DeviceMobile {
		mobile = " Mobile"
	}

	switch fp.browser {
	case BrowserFirefox:
		if fp.os == OSAndroid {
			return fmt.Sprintf("Mozilla/5.0 (Android %d; Mobile; rv:%d.0) Gecko/%d.0 Firefox/%d.0", 10+g.rng.IntN(5), major, major, major)
		}
		return fmt.Sprintf("Mozilla/5.0 (%s; rv:%d.0) Gecko/20100101 Firefox/%d.0", platform, major, major)
	case BrowserSafari:
		return fmt.Sprintf("Mozilla/5.0 (%s) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/%d.%d%s Safari/605.1.15", platform, major, g.rng.IntN(6), mobile)
	case BrowserEdge:
		return fmt.Sprintf("Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.0.0.0%s Safari/537.36 Edg/%d.0.0.0", platform, major, mobile, major)
	default:
		if fp.os == OSIOS {
			return fmt.Sprintf("Mozilla/5.0 (%s) AppleWebKit/605.1.15 (KHTML, like Gecko) CriOS/%d.0.0.0 Mobile/15E148 Safari/604.1", platform, major)
		}
		return fmt.Sprintf("Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.0.0.0%s Safari/537.36", platform, major, mobile)
	}
}

// secCHUA returns the brand list for Chromium browsers and "" otherwise.
func (g *HeaderGenerator) secCHUA(browser string, major int) string {
	switch browser {
	case BrowserChrome:
		return fmt.Sprintf(`"Chromium";v="%d", "Google Chrome";v="%d", "Not-A.Brand";v="99"`, major, major)
	case BrowserEdge:
		return fmt.Sprintf(`"Chromium";v="%d", "Microsoft Edge";v="%d", "Not-A.Brand";v="99"`, major, major)
	}
	return ""
}

// acceptLanguage lists the configured locales with decreasing q-values,
// each followed by its bare language when that differs.
func (g *HeaderGenerator) acceptLanguage() string {
	locales := g.opts.Locales
	var parts []string
	seen := make(map[string]bool)
	q := 10
	for _, loc := range locales {
		for _, tag := range []string{loc, strings.SplitN(loc, "-", 2)[0]} {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			if len(parts) == 0 {
				parts = append(parts, tag)
			} else {
				parts = append(parts, fmt.Sprintf("%s;q=0.%d", tag, max(q, 1)))
			}
			q--
		}
	}
	return strings.Join(parts, ",")
}

func acceptFor(browser string) string {
	switch browser {
	case BrowserFirefox, BrowserSafari:
		return "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	default:
		return "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7"
	}
}

func encodingFor(browser string) string {
	switch browser {
	case BrowserChrome, BrowserEdge:
		return "gzip, deflate, br, zstd"
	default:
		return "gzip, deflate, br"
	}
}

// chromiumOnly drops client hints for browsers that do not send them.
func chromiumOnly(browser, value string) string {
	if browser == BrowserChrome || browser == BrowserEdge {
		return value
	}
	return ""
}

func boolHint(b bool) string {
	if b {
		return "?1"
	}
	return "?0"
}

func platformHint(osName string) string {
	switch osName {
	case OSWindows:
		return `"Windows"`
	case OSMacOS:
		return `"macOS"`
	case OSLinux:
		return `"Linux"`
	case OSAndroid:
		return `"Android"`
	case OSIOS:
		return `"iOS"`
	}
	return ""
}
