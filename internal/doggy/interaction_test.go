package doggy

import (
	"testing"

	"webdoggy/internal/page"
)

func TestMenu_ArmedAfterDelay(t *testing.T) {
	h := newHarness(t, pickSit)
	h.summon()

	if h.c.ContextMenu(500, 500) {
		t.Fatal("context menu away from the pet should not open the menu")
	}
	if !h.c.ContextMenu(110, 110) {
		t.Fatal("context menu on the pet should open the menu")
	}
	if n := len(h.doc.ByClass(ClassMenu)); n != 1 {
		t.Fatalf("found %d menus, want 1", n)
	}

	// the click that opened the menu must not close it
	h.c.Click(700, 500, Modifiers{})
	if !h.c.MenuOpen() {
		t.Fatal("menu closed before it was armed")
	}

	h.frames(7) // 112ms
	h.c.Click(700, 500, Modifiers{})
	if h.c.MenuOpen() {
		t.Error("outside click should close an armed menu")
	}
	if n := len(h.doc.ByClass(ClassMenu)); n != 0 {
		t.Errorf("found %d menus after close, want 0", n)
	}
}

func TestMenu_ReopenReplaces(t *testing.T) {
	h := newHarness(t, pickSit)
	h.summon()
	h.c.OpenMenu(110, 110)
	h.c.OpenMenu(120, 120)
	if n := len(h.doc.ByClass(ClassMenu)); n != 1 {
		t.Errorf("found %d menus, want 1", n)
	}
}

func TestMenu_ClickItemExecutes(t *testing.T) {
	h := newHarness(t, pickSit)
	h.summon()
	h.c.ContextMenu(110, 110)

	// fourth row
	h.c.Click(150, 110+3*MenuItemHeight+5, Modifiers{})
	if h.c.MenuOpen() {
		t.Error("executing a command should close the menu")
	}
	p := h.c.Pet()
	if p.Activity != Sleep {
		t.Fatalf("Activity = %v, want sleep", p.Activity)
	}
	if text := h.doc.ByClass(ClassPet)[0].Text; text != SleepingEmoji {
		t.Errorf("pet shows %q while sleeping", text)
	}

	h.frames(320) // 5.12s
	if a := h.c.Pet().Activity; a != Sit {
		t.Errorf("Activity = %v after sleeping, want random activity", a)
	}
	if text := h.doc.ByClass(ClassPet)[0].Text; text != PetEmoji {
		t.Errorf("pet shows %q after waking", text)
	}
}

func TestExecute_Sequences(t *testing.T) {
	tests := []struct {
		name  string
		cmd   Command
		first Activity
		// activity after n frames
		frames int
		then   Activity
	}{
		{"sit", CmdSit, Sit, 100, Sit},
		{"play jumps then barks", CmdPlay, Jumping, 40, Bark},
		{"play ends in random", CmdPlay, Jumping, 110, Sit},
		{"sleep", CmdSleep, Sleep, 250, Sleep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, pickWalk)
			h.summon()
			h.place(300, 550)
			RandFloat64 = func() float64 { return pickSit }

			h.c.Execute(tt.cmd)
			if a := h.c.Pet().Activity; a != tt.first {
				t.Fatalf("Activity = %v, want %v", a, tt.first)
			}
			h.frames(tt.frames)
			if a := h.c.Pet().Activity; a != tt.then {
				t.Errorf("after %d frames Activity = %v, want %v", tt.frames, a, tt.then)
			}
		})
	}
}

func TestExecute_Fetch(t *testing.T) {
	h := newHarness(t, 0.5)
	h.summon()
	h.c.Execute(CmdFetch)

	p := h.c.Pet()
	if p.Target == nil {
		t.Fatal("fetch should set a target")
	}
	// 0.5 of the 800x600 viewport, shifted by the aim offset
	if *p.Target != (Vec{X: 380, Y: 260}) {
		t.Errorf("Target = %+v, want (380,260)", *p.Target)
	}
	if p.Activity != Running {
		t.Errorf("Activity = %v, want running", p.Activity)
	}
}

func TestClick_CtrlShiftCalls(t *testing.T) {
	tests := []struct {
		name string
		mods Modifiers
		want bool
	}{
		{"plain", Modifiers{}, false},
		{"ctrl only", Modifiers{Ctrl: true}, false},
		{"shift only", Modifiers{Shift: true}, false},
		{"ctrl shift", Modifiers{Ctrl: true, Shift: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, pickSit)
			h.summon()
			h.c.Click(400, 300, tt.mods)
			if got := h.c.Pet().Target != nil; got != tt.want {
				t.Errorf("target set = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrag_Pet(t *testing.T) {
	h := newHarness(t, pickSit)
	h.summon()

	if !h.c.PointerDown(110, 110) {
		t.Fatal("pointer down on the pet should start a drag")
	}
	if !h.c.Pet().Dragging || !h.c.Dragging() {
		t.Fatal("pet should be dragging")
	}
	if !h.doc.ByClass(ClassPet)[0].HasClass(ClassDragging) {
		t.Error("pet element should carry the dragging class")
	}

	h.c.PointerMove(300, 200)
	want := Vec{X: 290, Y: 190}
	if p := h.c.Pet().Position; p != want {
		t.Errorf("Position = %+v, want %+v", p, want)
	}

	// physics and timers leave a held pet alone
	h.frames(300)
	if p := h.c.Pet().Position; p != want {
		t.Errorf("held pet moved to %+v", p)
	}

	h.c.PointerUp()
	p := h.c.Pet()
	if p.Dragging || h.c.Dragging() {
		t.Error("drag should have ended")
	}
	if p.Activity != Sit {
		t.Errorf("Activity = %v, want random activity after drop", p.Activity)
	}
	h.frames(1)
	if y := h.c.Pet().Position.Y; y <= 190 {
		t.Errorf("dropped pet should fall, y = %v", y)
	}
}

func TestDrag_Block(t *testing.T) {
	h := newHarness(t, pickSit)
	h.summon()
	block := h.c.CreateBlock()

	if !h.c.PointerDown(160, 130) {
		t.Fatal("pointer down on a block should start a drag")
	}
	if h.c.Pet().Dragging {
		t.Error("dragging a block should not drag the pet")
	}
	h.c.PointerMove(410, 330)
	if block.Rect.X != 400 || block.Rect.Y != 320 {
		t.Errorf("block at (%v,%v), want (400,320)", block.Rect.X, block.Rect.Y)
	}
	h.c.PointerUp()
	h.c.PointerMove(10, 10)
	if block.Rect.X != 400 {
		t.Error("block kept following after pointer up")
	}
}

func TestDrag_NothingUnderPointer(t *testing.T) {
	h := newHarness(t, pickSit)
	h.summon()
	if h.c.PointerDown(700, 500) {
		t.Error("pointer down on empty page should not drag")
	}
	h.c.PointerMove(10, 10)
	h.c.PointerUp()
}

func TestJumpToElement(t *testing.T) {
	btn := &page.Element{Tag: "BUTTON", Rect: page.Rect{X: 400, Y: 300, W: 80, H: 30}}
	h := newHarness(t, pickSit, btn)
	h.summon()
	h.place(100, 550)

	if !h.c.JumpToElement(DirRight) {
		t.Fatal("button to the right should be a jump target")
	}
	p := h.c.Pet()
	if p.Activity != Jumping {
		t.Errorf("Activity = %v, want jumping", p.Activity)
	}
	want := Vec{X: 420, Y: 265}
	if p.Target == nil || *p.Target != want {
		t.Fatalf("Target = %v, want %+v", p.Target, want)
	}

	for i := 0; i < 300 && h.c.Pet().Target != nil; i++ {
		h.frames(1)
	}
	if h.c.Pet().Target != nil {
		t.Fatal("jump never arrived")
	}
}

func TestJumpToElement_NoCandidate(t *testing.T) {
	btn := &page.Element{Tag: "BUTTON", Rect: page.Rect{X: 400, Y: 300, W: 80, H: 30}}
	h := newHarness(t, pickSit, btn)
	h.summon()
	h.place(100, 550)

	for _, dir := range []Direction{DirLeft, DirDown} {
		if h.c.JumpToElement(dir) {
			t.Errorf("%v: nothing should qualify", dir)
		}
	}
	if h.c.Pet().Target != nil {
		t.Error("failed jump should not set a target")
	}
	bubbles := h.doc.ByClass(ClassBubble)
	if len(bubbles) != 2 || bubbles[0].Text != "No place to jump!" {
		t.Fatalf("bubbles = %d, want two notices", len(bubbles))
	}
	if a := h.c.Pet().Activity; a != Sit {
		t.Errorf("Activity = %v, want random activity", a)
	}

	h.frames(130) // notices last 2s
	if n := len(h.doc.ByClass(ClassBubble)); n != 0 {
		t.Errorf("%d notices left after they expired", n)
	}
	if n := len(h.c.Notices()); n != 0 {
		t.Errorf("controller still tracks %d notices", n)
	}
}

func TestJumpToElement_MissLandsFlight(t *testing.T) {
	h := newHarness(t, pickSit)
	h.summon()
	h.place(300, 300)

	h.c.ToggleFly()
	if h.c.JumpToElement(DirUp) {
		t.Fatal("empty page should have no jump target")
	}
	p := h.c.Pet()
	if p.Flying {
		t.Error("a failed jump should end free flight")
	}
	if p.Activity != Sit {
		t.Errorf("Activity = %v, want sit", p.Activity)
	}

	h.frames(100)
	if y := h.c.Pet().Position.Y; y != 550 {
		t.Errorf("y = %v, want the pet back on the floor at 550", y)
	}
}

func TestJumpToElement_MissDropsTarget(t *testing.T) {
	h := newHarness(t, pickSit)
	h.summon()
	h.place(300, 550)

	h.c.CallTo(700, 590)
	if h.c.JumpToElement(DirLeft) {
		t.Fatal("empty page should have no jump target")
	}
	if h.c.Pet().Target != nil {
		t.Error("a failed jump should drop the pending target")
	}
}

func TestJumpToElement_UsesBlocks(t *testing.T) {
	h := newHarness(t, pickSit)
	h.summon()
	h.place(100, 550)
	block := h.c.CreateBlock()
	block.Rect.X, block.Rect.Y = 100, 300

	if !h.c.JumpToElement(DirUp) {
		t.Fatal("block above should be a jump target")
	}
	if want := (Vec{X: 110, Y: 265}); *h.c.Pet().Target != want {
		t.Errorf("Target = %+v, want %+v", *h.c.Pet().Target, want)
	}
}

func TestFly_ToggleAndNudge(t *testing.T) {
	h := newHarness(t, pickSit)
	h.summon()
	h.place(300, 300)

	if h.c.Nudge(1, 0) {
		t.Error("nudge should need free flight")
	}

	h.c.Execute(CmdFly)
	p := h.c.Pet()
	if !p.Flying || p.Activity != Flying {
		t.Fatalf("flying=%v activity=%v", p.Flying, p.Activity)
	}

	h.frames(10)
	if y := h.c.Pet().Position.Y; y != 300 {
		t.Errorf("flying pet drifted to y=%v without input", y)
	}

	if !h.c.Nudge(1, -1) {
		t.Fatal("nudge in free flight should steer")
	}
	h.frames(1)
	p = h.c.Pet()
	if p.Position != (Vec{X: 304, Y: 296}) {
		t.Errorf("Position = %+v, want (304,296)", p.Position)
	}
	if p.Velocity.X >= 4 || p.Velocity.X <= 0 {
		t.Errorf("vx = %v, want damped below fly speed", p.Velocity.X)
	}

	h.c.ToggleFly()
	p = h.c.Pet()
	if p.Flying {
		t.Error("second toggle should land")
	}
	if p.Activity != Sit {
		t.Errorf("Activity = %v, want random activity", p.Activity)
	}
	h.frames(5)
	if y := h.c.Pet().Position.Y; y <= 296 {
		t.Error("gravity should apply again after landing")
	}
}

func TestMouth_TakeAndPlace(t *testing.T) {
	input := &page.Element{Tag: "INPUT", Text: "hello", Rect: page.Rect{X: 500, Y: 100, W: 100, H: 20}}
	h := newHarness(t, pickSit, input)
	h.summon()

	// nothing focused: silent no-op
	if h.c.TakeFromFocused() {
		t.Fatal("take without focus should do nothing")
	}
	if n := len(h.c.Notices()); n != 0 {
		t.Errorf("silent no-op showed %d notices", n)
	}

	h.doc.Focus(input)
	if !h.c.TakeFromFocused() {
		t.Fatal("take from focused input failed")
	}
	if m := h.c.Pet().Mouth; m != "hello" {
		t.Errorf("Mouth = %q, want hello", m)
	}
	if input.Text != "" {
		t.Errorf("input still holds %q", input.Text)
	}

	h.doc.Focus(nil)
	if !h.c.PlaceMouth() {
		t.Fatal("place should drop a note")
	}
	notes := h.doc.ByClass(ClassNote)
	if len(notes) != 1 || notes[0].Text != "hello" {
		t.Fatalf("notes = %d, want one holding hello", len(notes))
	}
	if h.c.Pet().Mouth != "" {
		t.Error("mouth should be empty after placing")
	}

	if h.c.PlaceMouth() {
		t.Error("placing with an empty mouth should fail")
	}
	found := false
	for _, b := range h.c.Notices() {
		if b.Text == "Nothing in my mouth!" {
			found = true
		}
	}
	if !found {
		t.Error("empty mouth should show a notice")
	}
}

func TestMouth_PlaceIntoFocused(t *testing.T) {
	a := &page.Element{Tag: "INPUT", Text: "dog", Rect: page.Rect{X: 500, Y: 100, W: 100, H: 20}}
	b := &page.Element{Tag: "TEXTAREA", Text: "hot ", Rect: page.Rect{X: 500, Y: 200, W: 100, H: 60}}
	h := newHarness(t, pickSit, a, b)
	h.summon()

	h.doc.Focus(a)
	h.c.TakeFromFocused()
	h.doc.Focus(b)
	if !h.c.PlaceMouth() {
		t.Fatal("place into focused textarea failed")
	}
	if b.Text != "hot dog" {
		t.Errorf("textarea = %q, want %q", b.Text, "hot dog")
	}
	if n := len(h.doc.ByClass(ClassNote)); n != 0 {
		t.Errorf("placing into a field should not drop a note, found %d", n)
	}
}

func TestMouth_Full(t *testing.T) {
	input := &page.Element{Tag: "INPUT", Text: "more", Rect: page.Rect{X: 500, Y: 100, W: 100, H: 20}}
	h := newHarness(t, pickSit, input)
	h.summon()
	h.c.pet.Mouth = "bone"

	h.doc.Focus(input)
	if h.c.TakeFromFocused() {
		t.Error("full mouth should refuse")
	}
	if input.Text != "more" {
		t.Error("refused take should leave the input alone")
	}
}

func TestKeyPress_Steal(t *testing.T) {
	h := newHarness(t, 0.1)
	h.summon()
	h.place(300, 550)

	for _, r := range "hello" {
		h.c.KeyPress(r, "BODY")
	}
	h.frames(30) // debounce is 500ms
	if len(h.c.StolenTexts()) != 0 {
		t.Fatal("text stolen before typing paused")
	}

	h.frames(5)
	stolen := h.c.StolenTexts()
	if len(stolen) != 1 || stolen[0].Text != "hello" {
		t.Fatalf("stolen = %d, want one holding hello", len(stolen))
	}
	p := h.c.Pet()
	if p.Activity != Walk {
		t.Errorf("Activity = %v, want running off", p.Activity)
	}
	if v := p.Velocity.X; v != 4 && v != -4 {
		t.Errorf("vx = %v, want double walking speed", v)
	}

	h.frames(1)
	p = h.c.Pet()
	if x := stolen[0].Rect.X; x != p.Position.X+StolenTextOffsetX {
		t.Errorf("stolen text at x=%v, should follow the pet at %v", x, p.Position.X+StolenTextOffsetX)
	}

	h.frames(190) // run lasts 3s
	if v := h.c.Pet().Velocity.X; v != 2 && v != -2 {
		t.Errorf("vx = %v, want normal speed after the run", v)
	}

	// once the pet stops, the text fades and goes away
	h.c.Execute(CmdSit)
	h.frames(130)
	if !stolen[0].HasClass(ClassFading) {
		t.Error("stolen text should fade once the pet stops")
	}
	h.frames(70)
	if n := len(h.doc.ByClass(ClassStolenText)); n != 0 {
		t.Errorf("%d stolen texts left on the page", n)
	}
	if n := len(h.c.StolenTexts()); n != 0 {
		t.Errorf("controller still tracks %d stolen texts", n)
	}
}

func TestKeyPress_Ignored(t *testing.T) {
	tests := []struct {
		name string
		text string
		tag  string
		roll float64
	}{
		{"typing in an input", "hello", "INPUT", 0.1},
		{"typing in a textarea", "hello", "TEXTAREA", 0.1},
		{"too short", "hey", "BODY", 0.1},
		{"roll fails", "hello", "BODY", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.roll)
			h.summon()
			for _, r := range tt.text {
				h.c.KeyPress(r, tt.tag)
			}
			h.frames(40)
			if n := len(h.c.StolenTexts()); n != 0 {
				t.Errorf("stole %d texts, want none", n)
			}
		})
	}
}

func TestProbe_ClosestSurfaceWins(t *testing.T) {
	img := &page.Element{Tag: "IMG", Rect: page.Rect{X: 80, Y: 400, W: 120, H: 40}}
	h := newHarness(t, pickSit, img)
	h.summon()
	h.place(100, 365)

	// a block just below the image, inside the search distance
	block := h.c.CreateBlock()
	block.Rect.X, block.Rect.Y = 80, 470

	s, ok := h.c.probeSurface()
	if !ok || s.Element != img || s.Top != 400 {
		t.Fatalf("probe = %+v %v, want the image top at 400", s, ok)
	}

	h.frames(1)
	if y := h.c.Pet().Position.Y; y != 365 {
		t.Errorf("y = %v, want the pet still standing on the image at 365", y)
	}

	// standing right on the block, the block is closer than the image
	h.place(100, 435)
	s, ok = h.c.probeSurface()
	if !ok || s.Element != block {
		t.Errorf("probe = %+v %v, want the block", s, ok)
	}
}

func TestWalkable(t *testing.T) {
	tests := []struct {
		name string
		el   page.Element
		want bool
	}{
		{"image", page.Element{Tag: "IMG", Rect: page.Rect{W: 10, H: 10}}, true},
		{"lowercase link", page.Element{Tag: "a", Rect: page.Rect{W: 10, H: 10}}, true},
		{"plain div", page.Element{Tag: "DIV", Rect: page.Rect{W: 200, H: 100}}, false},
		{"bordered div", page.Element{Tag: "DIV", Rect: page.Rect{W: 200, H: 100}, Style: page.Style{BorderWidth: 1}}, true},
		{"painted div", page.Element{Tag: "DIV", Rect: page.Rect{W: 200, H: 100}, Style: page.Style{Background: "#eee"}}, true},
		{"transparent div", page.Element{Tag: "DIV", Rect: page.Rect{W: 200, H: 100}, Style: page.Style{Background: "transparent"}}, false},
		{"tiny painted div", page.Element{Tag: "DIV", Rect: page.Rect{W: 10, H: 4}, Style: page.Style{Background: "#eee"}}, false},
		{"hidden image", page.Element{Tag: "IMG", Rect: page.Rect{W: 10, H: 10}, Style: page.Style{Hidden: true}}, false},
	}
	h := newHarness(t, pickSit)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := tt.el
			if got := h.c.walkable(&el); got != tt.want {
				t.Errorf("walkable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProbe_SkipsOverlaysAndRoot(t *testing.T) {
	body := &page.Element{Tag: "BODY", Rect: page.Rect{W: 800, H: 600}}
	h := newHarness(t, pickSit, body)
	h.summon()
	h.place(100, 100)

	note := &page.Element{Tag: "DIV", Class: ClassNote, Rect: page.Rect{X: 90, Y: 130, W: 80, H: 40}}
	note.Style.Background = "yellow"
	h.doc.Append(note)

	if s, ok := h.c.probeSurface(); ok {
		t.Errorf("probe found %+v, overlays and body are not ground", s)
	}

	img := &page.Element{Tag: "IMG", Rect: page.Rect{X: 90, Y: 138, W: 80, H: 40}}
	h.doc.Append(img)
	s, ok := h.c.probeSurface()
	if !ok || s.Element != img || s.Top != 138 {
		t.Errorf("probe = %+v %v, want the image top", s, ok)
	}
}

func TestProbe_MaxSearch(t *testing.T) {
	tall := &page.Element{Tag: "IMG", Rect: page.Rect{X: 0, Y: 0, W: 800, H: 500}}
	h := newHarness(t, pickSit, tall)
	h.summon()
	h.place(100, 200)

	if s, ok := h.c.probeSurface(); ok {
		t.Errorf("surface %v px above the feet should be out of reach, got %+v", 240-s.Top, s)
	}
}

func TestIsOverlay(t *testing.T) {
	tests := []struct {
		class string
		want  bool
	}{
		{"", false},
		{"web-doggy walking", true},
		{"doggy-ladder", true},
		{"menu doggy-command-menu", true},
		{"doggybag", false},
	}
	for _, tt := range tests {
		if got := IsOverlay(&page.Element{Class: tt.class}); got != tt.want {
			t.Errorf("IsOverlay(%q) = %v, want %v", tt.class, got, tt.want)
		}
	}
}
