// Package walk drives a simulated humanoid through the quasi-static gait.
package walk

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gwillem/quasiwalk/pkg/gait"
	"github.com/gwillem/quasiwalk/pkg/math3d"
	"github.com/gwillem/quasiwalk/pkg/robot"
	"github.com/gwillem/quasiwalk/pkg/viewer"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "walk",
})

// State is published after every tick.
type State struct {
	Tick    int
	Time    float64
	Phase   gait.Phase
	Support gait.Side

	// Com is the measured center of mass if the simulator reports it, and
	// the target otherwise.
	Com       math3d.Vector3
	ComTarget math3d.Vector3
	ComError  float64 // distance between Com and ComTarget
	Feet      map[robot.FootName]math3d.Vector3

	// True during the final return to double support.
	Settling bool
	Done     bool
	Error    error
}

// comMeasurer is implemented by simulators which expose the actual center
// of mass, not only its target.
type comMeasurer interface {
	Com() math3d.Vector3
}

// Config holds configuration for a session.
type Config struct {
	Gait     gait.Options
	TimeStep float64
	Steps    int // number of full gait cycles
	Hz       int // real-time pacing; 0 runs as fast as possible

	// Element and Width are used when forwarding to the viewer.
	Element string
	Width   int
}

// Session owns everything needed for one walk: the simulator, the sequencer
// and an optional viewer. It is driven by a single loop, in Run.
type Session struct {
	sim    robot.Simulator
	seq    *gait.Sequencer
	viewer viewer.Client
	cfg    Config

	t    float64
	tick int

	mu      sync.RWMutex
	running bool
	stateCh chan State
	logCh   chan string
}

// NewSession builds the sequencer over sim. client may be nil, in which case
// nothing is visualized.
func NewSession(ctx context.Context, sim robot.Simulator, client viewer.Client, cfg Config) (*Session, error) {
	if cfg.TimeStep <= 0 {
		return nil, fmt.Errorf("time step must be positive, got %v", cfg.TimeStep)
	}
	if cfg.Element == "" {
		cfg.Element = viewer.DefaultElement
	}

	seq, err := gait.New(ctx, sim, cfg.Gait)
	if err != nil {
		return nil, fmt.Errorf("create sequencer: %w", err)
	}

	return &Session{
		sim:     sim,
		seq:     seq,
		viewer:  client,
		cfg:     cfg,
		stateCh: make(chan State, 1),
		logCh:   make(chan string, 10),
	}, nil
}

// States returns a channel that receives state updates. Only the latest
// state is kept if the reader falls behind.
func (s *Session) States() <-chan State {
	return s.stateCh
}

// Logs returns a channel that receives log messages.
func (s *Session) Logs() <-chan string {
	return s.logCh
}

// Sequencer returns the gait sequencer.
func (s *Session) Sequencer() *gait.Sequencer {
	return s.seq
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Time returns the simulated time.
func (s *Session) Time() float64 {
	return s.t
}

// TotalTicks returns the number of walking ticks, excluding the final one
// and the settling tail: enough to cover Steps full cycles.
func (s *Session) TotalTicks() int {
	return int((s.seq.Timing().Cycle() / s.cfg.TimeStep) * float64(s.cfg.Steps))
}

// SettleTicks returns the number of ticks given to the final return to
// double support.
func (s *Session) SettleTicks() int {
	return int(s.seq.Timing().ShiftToDouble / s.cfg.TimeStep)
}

func (s *Session) log(format string, args ...any) {
	msg := fmt.Sprintf("[t=%6.2f] %s", s.t, fmt.Sprintf(format, args...))
	select {
	case s.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Run walks for the configured number of steps, then moves the center of
// mass back between both feet and lets it settle. It returns early if ctx is
// cancelled or if the robot fails.
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("already running")
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	err := s.run(ctx)
	s.sendState(s.snapshot(ctx, true, err))
	return err
}

func (s *Session) run(ctx context.Context) error {
	total := s.TotalTicks()
	log.WithFields(logrus.Fields{
		"steps": s.cfg.Steps,
		"ticks": total + 1,
		"dt":    s.cfg.TimeStep,
	}).Info("walk started")
	s.log("Walking %d step(s), %d ticks", s.cfg.Steps, total+1)

	var pace <-chan time.Time
	if s.cfg.Hz > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(s.cfg.Hz))
		defer ticker.Stop()
		pace = ticker.C
	}

	for i := 0; i <= total; i++ {
		if err := s.wait(ctx, pace); err != nil {
			return err
		}
		if err := s.step(ctx, true); err != nil {
			return err
		}
	}

	// Whatever phase we ended in, go back to double support.
	if err := s.seq.CenterCoM(ctx); err != nil {
		return fmt.Errorf("return to double support: %w", err)
	}
	s.log("Returning to double support")
	log.WithField("t", s.t).Info("returning to double support")

	for i := 0; i < s.SettleTicks(); i++ {
		if err := s.wait(ctx, pace); err != nil {
			return err
		}
		if err := s.step(ctx, false); err != nil {
			return err
		}
	}

	log.WithField("t", s.t).Info("walk finished")
	s.log("Finished")
	return nil
}

func (s *Session) wait(ctx context.Context, pace <-chan time.Time) error {
	if pace == nil {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-pace:
		return nil
	}
}

// step advances the simulation by one tick. The sequencer is only updated
// while walking, not while settling.
func (s *Session) step(ctx context.Context, walking bool) error {
	s.t += s.cfg.TimeStep
	s.tick++

	config, err := s.sim.Increment(ctx, s.cfg.TimeStep)
	if err != nil {
		return fmt.Errorf("increment at t=%.2f: %w", s.t, err)
	}

	if walking {
		switched, err := s.seq.Update(ctx, s.t)
		if err != nil {
			return fmt.Errorf("update gait at t=%.2f: %w", s.t, err)
		}
		if switched {
			st := s.seq.State()
			s.log("%s (support: %s)", st.Phase, st.Support)
		}
	}

	if s.viewer != nil {
		padded := viewer.PadConfig(config, s.cfg.Width)
		if err := s.viewer.UpdateElementConfig(ctx, s.cfg.Element, padded); err != nil {
			log.WithError(err).Debug("viewer update failed")
		}
	}

	s.sendState(s.snapshot(ctx, false, nil))
	return nil
}

func (s *Session) snapshot(ctx context.Context, done bool, err error) State {
	st := s.seq.State()
	state := State{
		Tick:     s.tick,
		Time:     s.t,
		Phase:    st.Phase,
		Support:  st.Support,
		Settling: s.tick > s.TotalTicks()+1,
		Done:     done,
		Error:    err,
		Feet:     make(map[robot.FootName]math3d.Vector3, 2),
	}

	// Best effort; a failing robot is reported through Error already.
	if com, err := s.sim.ComTarget(ctx); err == nil {
		state.ComTarget = com
		state.Com = com
	}
	if m, ok := s.sim.(comMeasurer); ok {
		state.Com = m.Com()
	}
	state.ComError = state.Com.Distance(state.ComTarget)
	for _, foot := range robot.AllFeet() {
		if pose, err := s.sim.FootPose(ctx, foot); err == nil {
			state.Feet[foot] = pose.Translation()
		}
	}
	return state
}

func (s *Session) sendState(st State) {
	select {
	case s.stateCh <- st:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-s.stateCh:
		default:
		}
		select {
		case s.stateCh <- st:
		default:
		}
	}
}
