//go:build !windows

package clipguard

// Non-Windows builds have no raw multi-format clipboard access; the guard
// degrades to invalid snapshots, which make Restore a no-op.
type stubSystem struct{}

func newSystem() System { return stubSystem{} }

func (stubSystem) Open() bool { return false }
func (stubSystem) Close() {}
func (stubSystem) Formats() []uint32 { return nil }
func (stubSystem) Read(uint32) ([]byte, bool) { return nil, false }
func (stubSystem) Write(uint32, []byte) bool { return false }
func (stubSystem) Clear() bool { return false }
func (stubSystem) ReadText() (string, bool) { return "", false }
func (stubSystem) WriteText(string) bool { return false }
func (stubSystem) SequenceNumber() uint32 { return 0 }
