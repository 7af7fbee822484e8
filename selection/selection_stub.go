//go:build !windows

package selection

import "time"

// Non-Windows builds cannot query focus or inject key chords; the clipboard
// strategy then times out against the stub clipguard backend.
type stubQuerier struct{}

func newQuerier() Querier { return stubQuerier{} }

func (stubQuerier) FocusedSelection() string { return "" }

type stubInjector struct{}

func newInjector() Injector { return stubInjector{} }

func (stubInjector) SendCopyCommand() bool { return false }
func (stubInjector) SendCtrlC() bool { return false }
func (stubInjector) SendCtrlInsert() bool { return false }
func (stubInjector) WaitModifierRelease(time.Duration) {}
