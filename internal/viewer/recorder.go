package viewer

import "context"

// Launch is one recorded viewer invocation.
type Launch struct {
	Wait  bool
	Left  string
	Right string
}

// Recorder is a Launcher test double that records invocations instead of
// starting a process.
type Recorder struct {
	Launches []Launch
	// Err, when set, is returned from every Launch.
	Err error
	// OnLaunch, when set, runs during each Launch, while the viewer would be open.
	OnLaunch func(l Launch)
}

// Launch records the call.
func (r *Recorder) Launch(_ context.Context, wait bool, left, right string) error {
	l := Launch{Wait: wait, Left: left, Right: right}
	r.Launches = append(r.Launches, l)
	if r.OnLaunch != nil {
		r.OnLaunch(l)
	}
	return r.Err
}

var _ Launcher = (*Recorder)(nil)
