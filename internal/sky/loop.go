package sky

// Loop schedules controller ticks. The host calls Step once per frame; Stop
// flips a flag so later steps are dropped.
type Loop struct {
	tick    func(now float64)
	running bool
	frames  uint64
}

// NewLoop creates a stopped loop around tick.
func NewLoop(tick func(now float64)) *Loop {
	return &Loop{tick: tick}
}

// Start enables ticking.
func (l *Loop) Start() {
	l.running = true
}

// Step runs one tick at timestamp now (milliseconds) and reports whether it ran.
func (l *Loop) Step(now float64) bool {
	if !l.running || l.tick == nil {
		return false
	}
	l.frames++
	l.tick(now)
	return true
}

// Stop halts the loop. Calling it more than once is harmless.
func (l *Loop) Stop() {
	l.running = false
}

// Running reports whether Step will tick.
func (l *Loop) Running() bool { return l.running }

// Frames returns the number of ticks run.
func (l *Loop) Frames() uint64 { return l.frames }

// Drive steps n frames with synthetic timestamps start, start+dt, ... and
// returns how many ran. Used for headless rendering and tests.
func (l *Loop) Drive(start, dt float64, n int) int {
	ran := 0
	for i := range n {
		if !l.Step(start + float64(i)*dt) {
			break
		}
		ran++
	}
	return ran
}
