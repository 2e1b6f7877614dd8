package mtc

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// State is the synchronization state of a Receiver.
type State int

const (
	// Idle means no MTC is being received.
	Idle State = iota
	// PreSync means quarter frames are arriving and the receiver waits for
	// the lock point before declaring sync.
	PreSync
	// Sync means the receiver is locked to incoming MTC.
	Sync
	// Freewheeling means MTC was interrupted briefly, or has not been
	// received long enough to lock.
	Freewheeling
	// IncompatibleFrameRate means the incoming MTC cannot be converted to
	// the local frame rate.
	IncompatibleFrameRate
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PreSync:
		return "pre-sync"
	case Sync:
		return "sync"
	case Freewheeling:
		return "freewheeling"
	case IncompatibleFrameRate:
		return "incompatible frame rate"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status is the state of a Receiver. In PreSync, LockTime and LockTimecode
// hold the point at which sync will be declared.
type Status struct {
	State        State
	LockTime     time.Time
	LockTimecode Timecode
}

func (s Status) String() string {
	if s.State == PreSync {
		return fmt.Sprintf("%v (lock at %v)", s.State, s.LockTimecode)
	}
	return s.State.String()
}

// SyncPolicy controls how the receiver locks and drops out.
type SyncPolicy struct {
	// LockFrames is the number of frames of continuous MTC required
	// before sync is declared.
	LockFrames int
	// DropOutFrames is the number of frames without MTC after which the
	// receiver goes idle.
	DropOutFrames int
}

const maxPolicyFrames = 100

func DefaultSyncPolicy() SyncPolicy {
	return SyncPolicy{LockFrames: 16, DropOutFrames: 10}
}

func (p SyncPolicy) clamped() SyncPolicy {
	return SyncPolicy{
		LockFrames:    clampFrames(p.LockFrames),
		DropOutFrames: clampFrames(p.DropOutFrames),
	}
}

func clampFrames(n int) int {
	if n < 0 {
		return 0
	}
	if n > maxPolicyFrames {
		return maxPolicyFrames
	}
	return n
}

// LockDuration returns the real time length of the lock period at rate.
func (p SyncPolicy) LockDuration(rate TimecodeRate) time.Duration {
	return FrameDuration(p.clamped().LockFrames, rate)
}

// DropOutDuration returns the real time length of the drop-out period at rate.
func (p SyncPolicy) DropOutDuration(rate TimecodeRate) time.Duration {
	return FrameDuration(p.clamped().DropOutFrames, rate)
}

// Observer receives notifications from a Receiver. Methods are called on the
// goroutine executing Run.
type Observer interface {
	TimecodeChanged(Update)
	StateChanged(Status)
}

type ReceiverConfig struct {
	// LocalRate is the frame rate timecode is reported at. If zero, timecode
	// is reported at the incoming MTC rate.
	LocalRate TimecodeRate

	// Policy sets lock and drop-out timing. If nil, DefaultSyncPolicy is used.
	Policy *SyncPolicy

	Observer Observer

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

const (
	// tickInterval is the period of the drop-out timer.
	tickInterval = 5 * time.Millisecond
	// continuousTimeout is the longest gap between quarter frames that
	// still counts as continuous MTC.
	continuousTimeout = 50 * time.Millisecond
)

// Receiver tracks an incoming MTC stream. Messages are passed in with Receive
// and processed by Run, which must be running for the receiver to work.
type Receiver struct {
	cfg     ReceiverConfig
	policy  SyncPolicy
	decoder *Decoder
	input   chan []byte
	closing chan struct{}
	once    sync.Once

	// owned by Run
	status   Status
	timecode Timecode
	prev     Timecode
	seq      int
	lastQF   time.Time
	timerOn  bool
}

func NewReceiver(cfg ReceiverConfig) *Receiver {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	policy := DefaultSyncPolicy()
	if cfg.Policy != nil {
		policy = *cfg.Policy
	}
	r := &Receiver{
		cfg:     cfg,
		policy:  policy.clamped(),
		decoder: NewDecoder(cfg.LocalRate),
		input:   make(chan []byte, 512),
		closing: make(chan struct{}),
	}
	r.timecode = r.decoder.Timecode()
	r.prev = Timecode{Rate: FPS30}
	return r
}

// Receive queues a MIDI message for processing. It blocks if the queue is full
// and returns immediately once the receiver is closed.
func (r *Receiver) Receive(msg []byte) {
	msg = append([]byte(nil), msg...)
	select {
	case r.input <- msg:
	case <-r.closing:
	}
}

// Close stops Run.
func (r *Receiver) Close() {
	r.once.Do(func() { close(r.closing) })
}

// Run processes received messages until the context is canceled or Close is called.
// The receiver is closed when Run returns.
func (r *Receiver) Run(ctx context.Context) error {
	defer r.Close()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		var tick <-chan time.Time
		if r.timerOn {
			tick = ticker.C
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.closing:
			return nil
		case msg := <-r.input:
			r.handle(msg, r.cfg.Clock())
		case <-tick:
			r.tick(r.cfg.Clock())
		}
	}
}

func (r *Receiver) handle(msg []byte, now time.Time) {
	u, ok := r.decoder.Receive(msg)
	if !ok {
		return
	}

	local := r.decoder.LocalRate()
	compatible := local == 0 || u.Timecode.Rate.CompatibleWith(local)
	isQF := u.Source == QuarterFrameMessage
	if isQF {
		r.lastQF = now
		r.timerOn = true
	}
	if !compatible {
		r.setStatus(Status{State: IncompatibleFrameRate})
		return
	}
	if isQF && (r.status.State == IncompatibleFrameRate || r.status.State == Idle) {
		r.setStatus(Status{State: Freewheeling})
	}

	r.timecode = u.Timecode
	if r.cfg.Observer != nil {
		r.cfg.Observer.TimecodeChanged(u)
	}
	if !isQF {
		return
	}

	lock := r.policy.LockFrames
	if r.status.State == Freewheeling {
		if u.Timecode == r.prev.Add(1) {
			r.seq++
		} else {
			r.seq = 0
		}
	}
	switch {
	case r.status.State == Freewheeling && r.seq <= lock:
		r.seq = 0
		rate := local
		if rate == 0 {
			rate = u.Timecode.Rate
		}
		r.setStatus(Status{
			State:        PreSync,
			LockTime:     now.Add(r.policy.LockDuration(rate)),
			LockTimecode: u.Timecode.Add(lock),
		})
	case r.seq >= lock && r.status.State == PreSync:
		r.setStatus(Status{State: Sync})
	}
	r.prev = u.Timecode
}

func (r *Receiver) tick(now time.Time) {
	if r.status.State == PreSync && r.timecode.Compare(r.status.LockTimecode) >= 0 {
		r.setStatus(Status{State: Sync})
	}

	rate := r.decoder.LocalRate()
	if rate == 0 {
		rate = FPS30
	}
	dropOut := r.policy.DropOutDuration(rate)
	gap := now.Sub(r.lastQF)
	switch {
	case gap > continuousTimeout && gap < dropOut:
		r.decoder.ResetQuarterFrameBuffer()
		r.setStatus(Status{State: Freewheeling})
	case gap > dropOut:
		r.setStatus(Status{State: Idle})
		r.timerOn = false
	}
}

func (r *Receiver) setStatus(s Status) {
	if s == r.status {
		return
	}
	r.status = s
	if r.cfg.Observer != nil {
		r.cfg.Observer.StateChanged(s)
	}
}
