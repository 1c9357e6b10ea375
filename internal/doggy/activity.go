package doggy

import (
	"time"

	"go.uber.org/zap"
)

// Activity is one state of the pet's behaviour state machine.
type Activity int

const (
	Idle Activity = iota
	Walk
	Sniff
	Dig
	Bark
	Sit
	Sleep
	Running
	Jumping
	Flying
)

var activityNames = [...]string{
	Idle:    "idle",
	Walk:    "walk",
	Sniff:   "sniff",
	Dig:     "dig",
	Bark:    "bark",
	Sit:     "sit",
	Sleep:   "sleep",
	Running: "running",
	Jumping: "jumping",
	Flying:  "flying",
}

func (a Activity) String() string {
	if a < 0 || int(a) >= len(activityNames) {
		return "unknown"
	}
	return activityNames[a]
}

// Class returns the animation class the pet element carries while the
// activity runs.
func (a Activity) Class() string {
	switch a {
	case Walk:
		return "walking"
	case Sniff:
		return "sniffing"
	case Dig:
		return "digging"
	case Bark:
		return "barking"
	case Sleep:
		return "sleeping"
	case Running:
		return "running"
	case Jumping:
		return "jumping"
	case Flying:
		return "flying"
	default:
		return ""
	}
}

// randomActivities is the idle cycle. Selection is uniform.
var randomActivities = [...]Activity{Walk, Sniff, Dig, Bark, Sit}

func pickRandomActivity() Activity {
	i := int(RandFloat64() * float64(len(randomActivities)))
	if i >= len(randomActivities) {
		i = len(randomActivities) - 1
	}
	return randomActivities[i]
}

// step is one timed state of a sequence.
type step struct {
	activity Activity
	duration time.Duration
}

// duration returns how long an activity lasts in the idle cycle.
func (c *Controller) duration(a Activity) time.Duration {
	ac := c.cfg.Activity
	switch a {
	case Walk:
		return ac.WalkMin + time.Duration(RandFloat64()*float64(ac.WalkJitter))
	case Sniff:
		return ac.Sniff
	case Dig:
		return ac.Dig
	case Bark:
		return ac.Bark
	case Sit:
		return ac.Sit
	case Sleep:
		return ac.Sleep
	}
	return 0
}

func (c *Controller) startRandomActivity() {
	if !c.active || c.pet.Dragging {
		return
	}
	c.stopActivity()

	a := pickRandomActivity()
	c.runSequence([]step{{activity: a, duration: c.duration(a)}})
}

// runSequence enters the first step and arms the single activity timer for
// the next one. An exhausted sequence hands control back to the idle cycle.
func (c *Controller) runSequence(steps []step) {
	c.cancelActivityTimer()
	if len(steps) == 0 {
		c.startRandomActivity()
		return
	}

	head, rest := steps[0], steps[1:]
	c.setActivity(head.activity)
	c.timer = c.sched.After(head.duration, func() {
		c.timer = 0
		c.runSequence(rest)
	})
}

func (c *Controller) cancelActivityTimer() {
	c.sched.Cancel(c.timer)
	c.timer = 0
}

func (c *Controller) stopActivity() {
	c.cancelActivityTimer()
	c.restoreSpeed()
	c.setActivity(Idle)
}

// preempt is what every external command does first: the current activity,
// target, climb and flight all end.
func (c *Controller) preempt() {
	c.stopActivity()
	c.pet.Target = nil
	c.stopClimbing()
	if c.pet.Flying {
		c.stopFlying()
	}
}

func (c *Controller) setActivity(a Activity) {
	prev := c.pet.Activity
	c.pet.Activity = a

	// an untargeted jump starts with an impulse
	if a == Jumping && c.pet.Target == nil {
		c.pet.Velocity.Y = c.cfg.Physics.JumpForce
	}
	if a == Walk {
		c.pet.LastPosition = c.pet.Position
		c.pet.StuckCount = 0
		// facing follows the walking direction
		c.face(c.pet.Velocity.X)
	}

	if prev != a {
		c.log.Debug("activity changed", zap.Stringer("from", prev), zap.Stringer("to", a))
	}
	c.render()
}
