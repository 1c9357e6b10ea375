package doggy

import (
	"strings"

	"go.uber.org/zap"

	"webdoggy/internal/page"
	"webdoggy/internal/schedule"
)

// Command is an entry of the pet's context menu.
type Command int

const (
	CmdSit Command = iota
	CmdFetch
	CmdPlay
	CmdSleep
	CmdJump
	CmdFly
)

// MenuItems are the menu labels, indexed by Command.
var MenuItems = [...]string{
	CmdSit:   "🦴 Sit",
	CmdFetch: "🏃 Fetch",
	CmdPlay:  "🎾 Play",
	CmdSleep: "💤 Sleep",
	CmdJump:  "🦘 Jump",
	CmdFly:   "🪽 Fly",
}

func (cmd Command) String() string {
	switch cmd {
	case CmdSit:
		return "sit"
	case CmdFetch:
		return "fetch"
	case CmdPlay:
		return "play"
	case CmdSleep:
		return "sleep"
	case CmdJump:
		return "jump"
	case CmdFly:
		return "fly"
	}
	return "unknown"
}

type commandMenu struct {
	el       *page.Element
	armed    bool // outside clicks close the menu only once armed
	armTimer schedule.ID
}

// Modifiers are the modifier keys held during a click.
type Modifiers struct {
	Ctrl, Shift, Alt bool
}

// ContextMenu handles a secondary click. Over the pet it opens the command
// menu and reports true.
func (c *Controller) ContextMenu(x, y float64) bool {
	if !c.active || !c.onPet(x, y) {
		return false
	}
	c.OpenMenu(x, y)
	return true
}

// OpenMenu shows the command menu at (x, y), replacing any open menu.
func (c *Controller) OpenMenu(x, y float64) {
	if !c.active {
		return
	}
	c.closeMenu()

	el := &page.Element{
		Tag:   "DIV",
		Class: ClassMenu,
		Text:  strings.Join(MenuItems[:], "\n"),
		Rect:  page.Rect{X: x, Y: y, W: MenuWidth, H: float64(len(MenuItems)) * MenuItemHeight},
	}
	el.Style.Background = "white"
	el.Style.BorderWidth = 1
	c.page.Append(el)

	m := &commandMenu{el: el}
	m.armTimer = c.sched.After(c.cfg.Activity.MenuArmDelay, func() {
		m.armTimer = 0
		m.armed = true
	})
	c.menu = m
	c.log.Debug("menu opened")
}

// MenuOpen reports whether the command menu is showing.
func (c *Controller) MenuOpen() bool {
	return c.menu != nil
}

func (c *Controller) closeMenu() {
	if c.menu == nil {
		return
	}
	c.sched.Cancel(c.menu.armTimer)
	c.page.Remove(c.menu.el)
	c.menu = nil
}

func (c *Controller) menuItemAt(x, y float64) (Command, bool) {
	if c.menu == nil || !c.menu.el.Rect.Contains(x, y) {
		return 0, false
	}
	i := int((y - c.menu.el.Rect.Top()) / MenuItemHeight)
	if i < 0 || i >= len(MenuItems) {
		return 0, false
	}
	return Command(i), true
}

// Click handles a primary click at page point (x, y). A click on a menu item
// runs it. Ctrl+Shift sends the pet to the point.
func (c *Controller) Click(x, y float64, mods Modifiers) {
	if !c.active {
		return
	}

	if cmd, ok := c.menuItemAt(x, y); ok {
		c.closeMenu()
		c.Execute(cmd)
		return
	}
	if c.menu != nil && c.menu.armed {
		c.closeMenu()
	}

	if !c.pet.Dragging && mods.Ctrl && mods.Shift {
		c.CallTo(x, y)
	}
}

// Execute runs a menu command.
func (c *Controller) Execute(cmd Command) {
	if !c.active || c.pet.Dragging {
		return
	}
	c.log.Info("command", zap.Stringer("command", cmd))

	ac := c.cfg.Activity
	switch cmd {
	case CmdSit:
		c.preempt()
		c.runSequence([]step{{Sit, ac.Sit}})
	case CmdFetch:
		c.Fetch()
	case CmdPlay:
		c.preempt()
		c.runSequence([]step{{Jumping, ac.PlayJump}, {Bark, ac.PlayBark}})
	case CmdSleep:
		c.preempt()
		c.runSequence([]step{{Sleep, ac.Sleep}})
	case CmdJump:
		c.Jump()
	case CmdFly:
		c.ToggleFly()
	}
}
