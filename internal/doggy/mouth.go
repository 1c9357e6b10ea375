package doggy

import (
	"math"
	"unicode/utf8"

	"go.uber.org/zap"

	"webdoggy/internal/page"
)

type stolenText struct {
	el     *page.Element
	fading bool
}

func textRect(x, y float64, text string) page.Rect {
	return page.Rect{
		X: x,
		Y: y,
		W: float64(utf8.RuneCountInString(text))*TextCharWidth + TextPadding,
		H: BubbleHeight,
	}
}

// KeyPress feeds a typed rune from the page. Keys typed into form fields are
// ignored. Once typing pauses the pet may run off with what was typed.
func (c *Controller) KeyPress(r rune, targetTag string) {
	if !c.active {
		return
	}
	switch targetTag {
	case "INPUT", "TEXTAREA":
		return
	}

	c.sched.Cancel(c.typingTimer)
	c.typing.WriteRune(r)

	ac := c.cfg.Activity
	c.typingTimer = c.sched.After(ac.TypingDebounce, func() {
		c.typingTimer = 0
		text := c.typing.String()
		c.typing.Reset()
		if utf8.RuneCountInString(text) >= ac.StealMinLength && RandFloat64() < ac.StealChance {
			c.StealText(text)
		}
	})
}

// StealText makes the pet grab text and run off with it at double speed.
func (c *Controller) StealText(text string) {
	if !c.active || c.pet.Dragging || text == "" {
		return
	}
	c.preempt()

	el := &page.Element{Tag: "DIV", Class: ClassStolenText, Text: text}
	el.Rect = textRect(c.pet.Position.X+StolenTextOffsetX, c.pet.Position.Y+StolenTextOffsetY, text)
	c.page.Append(el)
	c.stolen = append(c.stolen, &stolenText{el: el})

	dir := -1.0
	if c.pet.Flipped {
		dir = 1
	}
	c.pet.Velocity.X = math.Max(math.Abs(c.pet.Velocity.X), c.cfg.Physics.WalkSpeed) * dir * 2
	c.boosted = true
	c.setActivity(Walk)

	c.log.Info("text stolen", zap.Int("runes", utf8.RuneCountInString(text)))

	c.timer = c.sched.After(c.cfg.Activity.StealRunDuration, func() {
		c.timer = 0
		c.restoreSpeed()
		c.startRandomActivity()
	})
}

// followStolenTexts keeps stolen text at the pet's mouth while it moves. Once
// the pet stops, each text fades and is removed.
func (c *Controller) followStolenTexts() {
	moving := c.pet.Activity == Walk || c.pet.Target != nil
	ac := c.cfg.Activity

	for _, s := range c.stolen {
		if s.fading {
			continue
		}
		if moving {
			s.el.Rect.X = c.pet.Position.X + StolenTextOffsetX
			s.el.Rect.Y = c.pet.Position.Y + StolenTextOffsetY
			continue
		}

		s := s
		s.fading = true
		c.sched.After(ac.StolenFadeDelay, func() {
			s.el.SetOpacity(0)
			s.el.Class = ClassStolenText + " " + ClassFading
			c.sched.After(ac.StolenFadeDuration, func() {
				c.page.Remove(s.el)
				c.dropStolen(s)
			})
		})
	}
}

func (c *Controller) dropStolen(s *stolenText) {
	for i, o := range c.stolen {
		if o == s {
			c.stolen = append(c.stolen[:i], c.stolen[i+1:]...)
			return
		}
	}
}

// StolenTexts returns the stolen text overlays still on the page.
func (c *Controller) StolenTexts() []*page.Element {
	els := make([]*page.Element, 0, len(c.stolen))
	for _, s := range c.stolen {
		els = append(els, s.el)
	}
	return els
}

// TakeFromFocused moves the text of the focused form field into the pet's
// mouth. Without a focused field holding text nothing happens.
func (c *Controller) TakeFromFocused() bool {
	if !c.active {
		return false
	}
	f := c.page.Focused()
	if f == nil || !f.Editable() || f.Text == "" {
		return false
	}
	if c.pet.Mouth != "" {
		c.say("My mouth is full!")
		return false
	}

	c.pet.Mouth = f.Text
	f.Text = ""
	c.say("*chomp*")
	c.log.Debug("took text", c.elementField(f))
	return true
}

// PlaceMouth puts whatever the pet carries into the focused form field, or
// drops it on the page as a note.
func (c *Controller) PlaceMouth() bool {
	if !c.active {
		return false
	}
	if c.pet.Mouth == "" {
		c.say("Nothing in my mouth!")
		return false
	}

	text := c.pet.Mouth
	c.pet.Mouth = ""
	if f := c.page.Focused(); f != nil && f.Editable() {
		f.Text += text
		c.log.Debug("placed text", c.elementField(f))
		return true
	}

	el := &page.Element{Tag: "DIV", Class: ClassNote, Text: text}
	el.Rect = textRect(c.pet.Position.X, c.pet.Position.Y+c.cfg.Physics.PetHeight, text)
	el.Style.Background = "lightyellow"
	c.page.Append(el)
	c.notes = append(c.notes, el)
	c.log.Debug("placed note", c.elementField(el))
	return true
}

// say shows a speech bubble above the pet for a moment.
func (c *Controller) say(text string) {
	el := &page.Element{Tag: "DIV", Class: ClassBubble, Text: text}
	el.Rect = textRect(c.pet.Position.X, c.pet.Position.Y-BubbleLift, text)
	el.Style.Background = "white"
	c.page.Append(el)
	c.notices = append(c.notices, el)

	c.sched.After(c.cfg.Activity.NoticeDuration, func() {
		c.page.Remove(el)
		for i, n := range c.notices {
			if n == el {
				c.notices = append(c.notices[:i], c.notices[i+1:]...)
				break
			}
		}
	})
}

// Notices returns the speech bubbles currently showing.
func (c *Controller) Notices() []*page.Element {
	return append([]*page.Element(nil), c.notices...)
}

// Notes returns the notes the pet has dropped on the page.
func (c *Controller) Notes() []*page.Element {
	return append([]*page.Element(nil), c.notes...)
}
