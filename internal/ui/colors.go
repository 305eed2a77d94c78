package ui

// Color accessors return the escape code of a role in the active theme, or
// the empty string when colors are disabled.

func ColorPrimary() string   { return GetCurrentTheme().Primary }
func ColorSecondary() string { return GetCurrentTheme().Secondary }
func ColorSuccess() string   { return GetCurrentTheme().Success }
func ColorWarning() string   { return GetCurrentTheme().Warning }
func ColorError() string     { return GetCurrentTheme().Error }
func ColorInfo() string      { return GetCurrentTheme().Info }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorReset() string     { return GetCurrentTheme().Reset }

// Colorize wraps s in the given escape code and a reset. It returns s
// unchanged when code is empty.
func Colorize(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + ColorReset()
}
