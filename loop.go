package caliper

import "time"

// DefaultTickInterval is the floor between app:tick emissions: a 10 Hz
// target against a typical ~60 Hz frame rate.
const DefaultTickInterval = 100 * time.Millisecond

// defaultFrameRate drives the built-in real-time scheduler when the
// host does not supply its own frame callback primitive.
const defaultFrameRate = 60

// Clock returns the current time on a monotonic timeline. The absolute
// origin is arbitrary; only differences are used.
type Clock func() time.Duration

// Scheduler requests that fn run on the next hardware frame. The host
// adapter supplies one wired to its render loop; tests supply a manual
// one.
type Scheduler func(fn func())

// Loop bridges a single per-frame callback into two event streams on a
// Channel: TopicFrame every frame (the render heartbeat) and TopicTick
// at most once per tick interval (the throttled logic cadence).
//
// The tick stream is not a fixed-period timer. A tick fires on the
// first frame whose elapsed time since the previous tick exceeds the
// interval, carrying that elapsed time as its delta; the reference
// then resets to now, so the cadence drifts with frame jitter and the
// delta is always >= the interval, never exactly equal to it in
// practice.
type Loop struct {
	channel  *Channel
	clock    Clock
	schedule Scheduler
	interval time.Duration

	started  bool
	stopped  bool
	lastTick time.Duration
}

// NewLoop creates a loop emitting on ch, using a monotonic wall clock
// and a real-time goroutine scheduler at ~60 Hz. Hosts that own a
// render loop replace the scheduler via SetScheduler so frames stay
// render-synchronized; tests replace both (see SetClock).
func NewLoop(ch *Channel) *Loop {
	epoch := time.Now()
	l := &Loop{
		channel:  ch,
		clock:    func() time.Duration { return time.Since(epoch) },
		interval: DefaultTickInterval,
	}
	l.schedule = func(fn func()) {
		time.AfterFunc(time.Second/defaultFrameRate, fn)
	}
	return l
}

// SetClock replaces the monotonic clock. Must be called before Start.
func (l *Loop) SetClock(clock Clock) {
	l.clock = clock
}

// SetScheduler replaces the request-next-frame primitive. Must be
// called before Start.
func (l *Loop) SetScheduler(schedule Scheduler) {
	l.schedule = schedule
}

// SetInterval sets the minimum duration between tick emissions. Must
// be called before Start; values <= 0 keep the current interval.
func (l *Loop) SetInterval(d time.Duration) {
	if d > 0 {
		l.interval = d
	}
}

// Interval returns the configured tick interval.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Start arms the first frame callback. Starting an already-started
// loop is a programmer error: it panics in debug mode and is ignored
// otherwise. A stopped loop cannot be restarted; create a new one.
func (l *Loop) Start() {
	if l.started {
		debugCheck("Loop.Start called twice")
		return
	}
	l.started = true
	l.lastTick = l.clock()
	l.schedule(l.frame)
}

// Stop prevents any further re-arming. A callback already scheduled
// may still fire once; it observes the stopped flag and emits nothing.
// Stop is idempotent.
func (l *Loop) Stop() {
	l.stopped = true
}

// Running reports whether the loop has been started and not stopped.
func (l *Loop) Running() bool {
	return l.started && !l.stopped
}

// frame is the per-frame callback. Re-arming happens first so that a
// panicking subscriber cannot break the chain: frame-loop liveness is
// isolated from downstream consumer bugs.
func (l *Loop) frame() {
	if l.stopped {
		return
	}
	l.schedule(l.frame)

	l.channel.Emit(TopicFrame, nil)

	now := l.clock()
	if elapsed := now - l.lastTick; elapsed > l.interval {
		l.lastTick = now
		l.channel.Emit(TopicTick, TickEvent{Delta: elapsed})
	}
}
