package ui

import (
	"time"

	"webdoggy/internal/doggy"
)

// Animation tracks which activity the sprite is cycling through and since
// when.
type Animation struct {
	Activity  doggy.Activity
	StartTime time.Time
}

// AnimationFrames are the sprite frames per activity, drawn facing left.
// Every glyph is a single rune so a sprite can be mirrored rune by rune.
var AnimationFrames = map[doggy.Activity][]string{
	doggy.Idle:    {"🐕"},
	doggy.Walk:    {"🐕", "🐕🐾"},
	doggy.Sniff:   {"🐕👃", "🐕"},
	doggy.Dig:     {"🐕🦴", "🐕💨"},
	doggy.Bark:    {"🐕💬", "🐕❗"},
	doggy.Sit:     {"🐕"},
	doggy.Sleep:   {"😴", "😴💤"},
	doggy.Running: {"🐕💨", "🐕"},
	doggy.Jumping: {"🐕✨", "🐕"},
	doggy.Flying:  {"🐕🪽", "🐕"},
}

// AnimationFrameDuration is how long each frame displays
const AnimationFrameDuration = 250 * time.Millisecond

// Track restarts the animation when the activity changes.
func (a Animation) Track(act doggy.Activity, now time.Time) Animation {
	if a.Activity == act && !a.StartTime.IsZero() {
		return a
	}
	return Animation{Activity: act, StartTime: now}
}

// Frame returns the frame index at now.
func (a Animation) Frame(now time.Time) int {
	if now.Before(a.StartTime) {
		return 0
	}
	return int(now.Sub(a.StartTime) / AnimationFrameDuration)
}

// GetAnimationFrame returns the sprite for an activity at a frame index. The
// frames loop. facingRight mirrors the sprite.
func GetAnimationFrame(act doggy.Activity, frame int, facingRight bool) string {
	frames := AnimationFrames[act]
	if len(frames) == 0 {
		return doggy.PetEmoji
	}
	if frame < 0 {
		frame = 0
	}
	sprite := frames[frame%len(frames)]
	if !facingRight {
		return sprite
	}
	r := []rune(sprite)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// AnimationTotalFrames returns the number of frames for an activity.
func AnimationTotalFrames(act doggy.Activity) int {
	return len(AnimationFrames[act])
}
