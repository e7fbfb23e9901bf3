package driver

import "time"

// Stage is a step of per-file generation.
type Stage string

const (
	StageLoad    Stage = "load"
	StageConvert Stage = "convert"
	StageVerify  Stage = "verify"
	StageWrite   Stage = "write"
)

// Status is the state of a file within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one file. An empty File marks a run-level
// event.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Cached  bool
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. Generate calls OnEvent from worker
// goroutines concurrently.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func emit(s Sink, evt Event) {
	if s != nil {
		s.OnEvent(evt)
	}
}
