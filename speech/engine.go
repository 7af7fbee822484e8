package speech

// Voice identifies one installed speech voice.
type Voice struct {
	ID   string
	Name string
}

// Engine is a speech synthesis backend. Speak starts playback and returns
// without waiting for completion. Engines are owned by the controller's
// processing loop; nothing else calls into them once Start has run.
type Engine interface {
	Speak(text string) error
	Stop() error
	Busy() bool
	SetRate(wordsPerMinute int) error
	SetVoice(id string) error
	CurrentVoice() (string, error)
	Voices() ([]Voice, error)
	Close()
}
