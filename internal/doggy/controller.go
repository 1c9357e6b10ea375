package doggy

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"webdoggy/internal/config"
	"webdoggy/internal/page"
	"webdoggy/internal/schedule"
)

// Testable time and random functions
var (
	TimeNow     = func() time.Time { return time.Now().UTC() }
	RandFloat64 = rand.Float64
)

// Vec is a 2D vector in page pixels.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec            { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec            { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec      { return Vec{v.X * f, v.Y * f} }
func (v Vec) Len() float64             { return math.Hypot(v.X, v.Y) }
func (v Vec) DistanceTo(o Vec) float64 { return v.Sub(o).Len() }

// Pet is the doggy's kinematic and behavioural state.
type Pet struct {
	Position     Vec
	Velocity     Vec
	Flipped      bool // facing right
	Activity     Activity
	Dragging     bool
	Climbing     bool
	Flying       bool
	Target       *Vec
	StuckCount   int
	LastPosition Vec
	Mouth        string
}

// Page is the document surface the controller reads and decorates.
type Page interface {
	Viewport() page.Viewport
	ElementsFromPoint(x, y float64) []*page.Element
	Elements() []*page.Element
	Focused() *page.Element
	Append(el *page.Element)
	Remove(el *page.Element) bool
}

// Controller owns one pet on one page. All methods must be called from the
// host's single event loop.
type Controller struct {
	page  Page
	cfg   *config.Config
	log   *zap.Logger
	sched *schedule.Scheduler

	active bool
	gen    uint64 // frame chain generation; bumped on summon and dismiss

	pet   Pet
	el    *page.Element
	timer schedule.ID // the one activity timer

	walkVX   float64 // horizontal walking velocity saved during flight
	boosted  bool    // running away with stolen text
	climbing *page.Element

	drag    dragRecord
	menu    *commandMenu
	ladders []*page.Element
	blocks  []*page.Element
	stolen  []*stolenText
	notes   []*page.Element
	notices []*page.Element

	typing      strings.Builder
	typingTimer schedule.ID
}

// New returns an inactive controller for the page.
func New(p Page, cfg *config.Config, log *zap.Logger) *Controller {
	if cfg == nil {
		cfg = config.Defaults()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		page:  p,
		cfg:   cfg,
		log:   log,
		sched: schedule.New(TimeNow()),
	}
}

// Active reports whether the pet is on the page.
func (c *Controller) Active() bool {
	return c.active
}

// Generation identifies the live frame chain. Frames carrying any other
// generation are dropped.
func (c *Controller) Generation() uint64 {
	return c.gen
}

// Pet returns a copy of the pet state.
func (c *Controller) Pet() Pet {
	p := c.pet
	if p.Target != nil {
		t := *p.Target
		p.Target = &t
	}
	return p
}

// Summon puts the pet on the page at its start position and begins the idle
// cycle. Summoning an active pet does nothing. It returns the frame
// generation the host must pass to Frame.
func (c *Controller) Summon() uint64 {
	if c.active {
		return c.gen
	}

	ph := c.cfg.Physics
	c.active = true
	c.gen++
	c.sched.Reset(TimeNow())

	c.pet = Pet{
		Position: Vec{X: ph.StartX, Y: ph.StartY},
		Velocity: Vec{X: ph.WalkSpeed},
		Flipped:  ph.WalkSpeed > 0,
	}
	c.pet.LastPosition = c.pet.Position
	c.walkVX = ph.WalkSpeed
	c.boosted = false

	c.el = &page.Element{Tag: "DIV", Class: ClassPet, Text: PetEmoji}
	c.page.Append(c.el)
	c.render()

	c.log.Info("doggy summoned",
		zap.Uint64("generation", c.gen),
		zap.Float64("x", c.pet.Position.X),
		zap.Float64("y", c.pet.Position.Y))

	c.startRandomActivity()
	return c.gen
}

// Dismiss removes the pet and everything it put on the page, and cancels the
// frame chain and every pending timer. Dismissing an inactive pet does
// nothing.
func (c *Controller) Dismiss() {
	if !c.active {
		return
	}

	c.active = false
	c.gen++
	c.sched.Reset(c.sched.Now())
	c.timer = 0
	c.typingTimer = 0
	c.typing.Reset()
	c.drag = dragRecord{}
	c.climbing = nil

	c.closeMenu()
	c.removeAll(c.ladders)
	c.removeAll(c.blocks)
	c.removeAll(c.notes)
	c.removeAll(c.notices)
	for _, s := range c.stolen {
		c.page.Remove(s.el)
	}
	c.ladders, c.blocks, c.notes, c.notices, c.stolen = nil, nil, nil, nil, nil

	if c.el != nil {
		c.page.Remove(c.el)
		c.el = nil
	}

	c.log.Info("doggy dismissed", zap.Uint64("generation", c.gen))
}

func (c *Controller) removeAll(els []*page.Element) {
	for _, el := range els {
		c.page.Remove(el)
	}
}

// Frame runs one tick of the update loop. It reports whether the host should
// schedule another frame for gen.
func (c *Controller) Frame(gen uint64, now time.Time) bool {
	if !c.active || gen != c.gen {
		return false
	}

	c.sched.Advance(now)
	if !c.active || gen != c.gen {
		return false
	}

	if !c.pet.Dragging {
		c.step()
	}
	c.followStolenTexts()
	c.render()
	return true
}

func (c *Controller) step() {
	switch {
	case c.pet.Flying:
		c.fly()
	case c.pet.Climbing:
		c.climb()
	case c.pet.Activity == Walk:
		c.walk()
	case c.pet.Target != nil:
		c.moveToTarget()
	case c.pet.Activity == Jumping:
		c.jump()
	default:
		c.fall()
	}
}

// render writes the pet state into its element.
func (c *Controller) render() {
	if c.el == nil {
		return
	}
	ph := c.cfg.Physics
	c.el.Rect = page.Rect{X: c.pet.Position.X, Y: c.pet.Position.Y, W: ph.PetWidth, H: ph.PetHeight}

	classes := []string{ClassPet}
	if cls := c.pet.Activity.Class(); cls != "" {
		classes = append(classes, cls)
	}
	if c.pet.Dragging {
		classes = append(classes, ClassDragging)
	}
	c.el.Class = strings.Join(classes, " ")

	c.el.Text = PetEmoji
	if c.pet.Activity == Sleep {
		c.el.Text = SleepingEmoji
	}
	c.el.Style.MirrorX = c.pet.Flipped
}

func (c *Controller) footprint() page.Rect {
	ph := c.cfg.Physics
	return page.Rect{X: c.pet.Position.X, Y: c.pet.Position.Y, W: ph.PetWidth, H: ph.PetHeight}
}

func (c *Controller) onPet(x, y float64) bool {
	return c.el != nil && c.el.Rect.Contains(x, y)
}

func (c *Controller) elementField(el *page.Element) zap.Field {
	return zap.String("element", el.Tag+"#"+el.ID)
}

func (c *Controller) vecField(key string, v Vec) zap.Field {
	return zap.Float64s(key, []float64{v.X, v.Y})
}
