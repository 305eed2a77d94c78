// Package cli renders a run on a plain terminal: the spinner progress bar,
// the log-line progress style, the run configuration banner and the final
// summary table.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayProgress], [DisplayProgressLog].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatStatus].
//
//   - Print* functions write one-off banners.
//     Example: [PrintRunConfig].
package cli
