package doggy

import (
	"strings"

	"webdoggy/internal/page"
)

// Overlay classes. Everything the doggy inserts into the page carries one of
// these, which is how the surface probe tells its own nodes apart from page
// content.
const (
	ClassPet        = "web-doggy"
	ClassLadder     = "doggy-ladder"
	ClassBlock      = "doggy-block"
	ClassMenu       = "doggy-command-menu"
	ClassStolenText = "doggy-stolen-text"
	ClassNote       = "doggy-note"
	ClassBubble     = "doggy-bubble"
	ClassDragging   = "dragging"
	ClassFading     = "fading"
)

const (
	PetEmoji      = "🐕"
	SleepingEmoji = "😴"
	BlockEmoji    = "📦"

	LadderWidth  = 30
	LadderHeight = 150
	BlockSize    = 60

	MenuWidth      = 120
	MenuItemHeight = 24

	BubbleHeight  = 24
	BubbleLift    = 30
	TextCharWidth = 8
	TextPadding   = 16

	StolenTextOffsetX = 40
	StolenTextOffsetY = -20
)

// IsOverlay reports whether el was inserted by the doggy rather than being
// page content.
func IsOverlay(el *page.Element) bool {
	for _, c := range strings.Fields(el.Class) {
		if c == ClassPet || strings.HasPrefix(c, "doggy-") {
			return true
		}
	}
	return false
}
