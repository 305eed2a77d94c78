// Package orchestration runs one worker unit per job concurrently, funnels
// their messages into a single reporter stream, and decides the overall
// outcome of a run. It decouples the run from presentation through the
// ProgressReporter and SummaryPresenter interfaces.
package orchestration
