// Package gait implements a quasi-static walking sequencer for a humanoid.
//
// The sequencer cycles through four phases: shift the center of mass over the
// support foot, lift the other foot, land it where it started, and shift the
// center of mass back between both feet. The support foot swaps at the end of
// every cycle. It does no control itself; every phase only sets targets which
// the robot's whole-body solver then tracks.
package gait

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gwillem/quasiwalk/pkg/math3d"
	"github.com/gwillem/quasiwalk/pkg/robot"
)

const (
	// The distance which the flying foot is raised during PhaseLift.
	DefaultFootAltitude = 0.1

	// The control gain given to both ankle tasks at construction.
	DefaultAnkleGain = 1.0
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "gait",
})

// Options configures a Sequencer. Values are used as given, zeros included.
type Options struct {
	Timing       Timing
	FootAltitude float64
	AnkleGain    float64
}

// DefaultOptions returns the default timing, foot altitude and ankle gain.
func DefaultOptions() Options {
	return Options{
		Timing:       DefaultTiming(),
		FootAltitude: DefaultFootAltitude,
		AnkleGain:    DefaultAnkleGain,
	}
}

// State is a snapshot of the sequencer.
type State struct {
	Phase      Phase
	Support    Side
	NextSwitch float64
	Time       float64
}

// Sequencer steps the robot through the walking cycle. It must be updated
// often relative to the phase durations: at most one phase change happens
// per call to Update, no matter how many deadlines have passed.
type Sequencer struct {
	body robot.Body
	opts Options

	phase      Phase
	support    Side
	nextSwitch float64
	t          float64

	// Set once the first phase has been entered.
	started bool

	// Foot poses at construction. A landing foot is put back here.
	neutral map[robot.FootName]math3d.Pose
}

// New records the current foot poses as neutral, sets both ankle gains, and
// returns a sequencer which will shift the weight onto the left foot on its
// first update.
func New(ctx context.Context, body robot.Body, opts Options) (*Sequencer, error) {
	s := &Sequencer{
		body:       body,
		opts:       opts,
		phase:      PhaseShiftToSingle,
		support:    SideLeft,
		nextSwitch: 0,
		neutral:    make(map[robot.FootName]math3d.Pose, 2),
	}

	for _, foot := range robot.AllFeet() {
		pose, err := body.FootPose(ctx, foot)
		if err != nil {
			return nil, fmt.Errorf("read initial pose of %s: %w", foot, err)
		}
		s.neutral[foot] = pose
	}

	for _, foot := range robot.AllFeet() {
		if err := body.SetControlGain(ctx, foot, s.opts.AnkleGain); err != nil {
			return nil, fmt.Errorf("set control gain of %s: %w", foot, err)
		}
	}

	return s, nil
}

// State returns a snapshot of the sequencer.
func (s *Sequencer) State() State {
	return State{
		Phase:      s.phase,
		Support:    s.support,
		NextSwitch: s.nextSwitch,
		Time:       s.t,
	}
}

// Timing returns the phase durations in use.
func (s *Sequencer) Timing() Timing {
	return s.opts.Timing
}

// Neutral returns the pose which the given foot had at construction.
func (s *Sequencer) Neutral(foot robot.FootName) math3d.Pose {
	return s.neutral[foot]
}

func (s *Sequencer) supportFoot() robot.FootName {
	return s.support.Foot()
}

func (s *Sequencer) flyingFoot() robot.FootName {
	return s.support.Other().Foot()
}

// Update is called once per tick with the current simulated time. If the
// current phase is over, it moves to the next one and sets the new targets.
// It returns true if the phase changed. If entering the next phase fails, the
// sequencer stays where it was and the same phase is tried again on the next
// call.
func (s *Sequencer) Update(ctx context.Context, t float64) (bool, error) {
	s.t = t

	if t < s.nextSwitch {
		return false, nil
	}

	next := s.phase
	if s.started {
		next = s.phase.Next()
	}

	if err := s.enter(ctx, next); err != nil {
		return false, fmt.Errorf("enter %s: %w", next, err)
	}
	s.phase = next
	s.started = true

	log.WithFields(logrus.Fields{
		"t":       t,
		"phase":   s.phase,
		"support": s.support,
		"next":    s.nextSwitch,
	}).Info("phase switch")

	return true, nil
}

func (s *Sequencer) enter(ctx context.Context, p Phase) error {
	var err error

	switch p {
	case PhaseShiftToSingle:
		err = s.shiftToSingle(ctx)
	case PhaseLift:
		err = s.liftFoot(ctx, s.flyingFoot())
	case PhaseLand:
		err = s.landFoot(ctx, s.flyingFoot())
	case PhaseShiftToDouble:
		err = s.shiftToDouble(ctx)
	default:
		return fmt.Errorf("unknown phase: %d", int(p))
	}

	if err != nil {
		return err
	}

	s.nextSwitch = s.t + s.opts.Timing.Of(p)
	return nil
}

func (s *Sequencer) shiftToSingle(ctx context.Context) error {
	pose, err := s.body.FootPose(ctx, s.supportFoot())
	if err != nil {
		return err
	}
	tr := pose.Translation()
	return s.moveCoM(ctx, tr.X, tr.Y)
}

func (s *Sequencer) shiftToDouble(ctx context.Context) error {
	if err := s.CenterCoM(ctx); err != nil {
		return err
	}
	s.support = s.support.Other()
	return nil
}

// CenterCoM moves the center of mass target back over the origin, i.e.
// between both feet. The height is unchanged. The phase is not touched, so
// this is safe to call when the walk is interrupted.
func (s *Sequencer) CenterCoM(ctx context.Context) error {
	return s.moveCoM(ctx, 0, 0)
}

// moveCoM sets the X/Y of the center of mass target, keeping its current Z.
func (s *Sequencer) moveCoM(ctx context.Context, x, y float64) error {
	com, err := s.body.ComTarget(ctx)
	if err != nil {
		return err
	}
	com.X = x
	com.Y = y
	return s.body.SetComTarget(ctx, com)
}

// liftFoot raises the target of the foot above where it is now. Orientation
// and horizontal position are kept.
func (s *Sequencer) liftFoot(ctx context.Context, foot robot.FootName) error {
	pose, err := s.body.FootPose(ctx, foot)
	if err != nil {
		return err
	}
	lifted := pose.Translation().Add(math3d.Vector3{Z: s.opts.FootAltitude})
	return s.body.SetFootTarget(ctx, foot, pose.WithTranslation(lifted))
}

func (s *Sequencer) landFoot(ctx context.Context, foot robot.FootName) error {
	return s.body.SetFootTarget(ctx, foot, s.neutral[foot])
}
