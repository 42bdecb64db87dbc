package ebitenhost

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/shamseena-dev/pencil"
)

// maxTouches is the number of touch slots; slot 0 is the mouse.
const maxTouches = 10

var mouseButtons = []struct {
	ebiten ebiten.MouseButton
	pencil pencil.MouseButton
}{
	{ebiten.MouseButtonLeft, pencil.MouseButtonLeft},
	{ebiten.MouseButtonRight, pencil.MouseButtonRight},
	{ebiten.MouseButtonMiddle, pencil.MouseButtonMiddle},
}

// inputState remembers what was sent to the scene so that polled device
// state can be turned into events.
type inputState struct {
	mouseX, mouseY float64
	mouseSeen      bool
	focused        bool

	touchUsed [maxTouches]bool
	touchMap  [maxTouches]ebiten.TouchID
	touchLast [maxTouches][2]float64
	touchIDs  []ebiten.TouchID
	keys      []ebiten.Key
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() pencil.KeyModifiers {
	var mods pencil.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= pencil.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= pencil.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= pencil.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= pencil.ModMeta
	}
	return mods
}

// poll sends this tick's input to the scene.
func (in *inputState) poll(scene *pencil.Scene) {
	mods := readModifiers()
	in.pollFocus(scene, mods)
	in.pollMouse(scene, mods)
	in.pollTouches(scene, mods)
	in.pollKeys(scene, mods)
}

// pollFocus cancels the mouse pointer when the window loses focus, since
// its release would never be seen.
func (in *inputState) pollFocus(scene *pencil.Scene, mods pencil.KeyModifiers) {
	focused := ebiten.IsFocused()
	if in.focused && !focused {
		scene.DispatchPointer(pencil.PointerInput{
			ID: 0, Kind: pencil.PointerCancel, X: in.mouseX, Y: in.mouseY, Modifiers: mods,
		})
		in.mouseSeen = false
	}
	in.focused = focused
}

func (in *inputState) pollMouse(scene *pencil.Scene, mods pencil.KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if !in.mouseSeen || x != in.mouseX || y != in.mouseY {
		in.mouseX, in.mouseY, in.mouseSeen = x, y, true
		scene.DispatchPointer(pencil.PointerInput{ID: 0, Kind: pencil.PointerMove, X: x, Y: y, Modifiers: mods})
	}
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.ebiten) {
			scene.DispatchPointer(pencil.PointerInput{ID: 0, Kind: pencil.PointerDown, X: x, Y: y, Button: b.pencil, Modifiers: mods})
		}
		if inpututil.IsMouseButtonJustReleased(b.ebiten) {
			scene.DispatchPointer(pencil.PointerInput{ID: 0, Kind: pencil.PointerUp, X: x, Y: y, Button: b.pencil, Modifiers: mods})
		}
	}
	// Ebitengine reports positive y for wheel-up; the scene expects
	// negative.
	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		scene.DispatchPointer(pencil.PointerInput{ID: 0, Kind: pencil.PointerWheel, X: x, Y: y, DeltaX: -dx, DeltaY: -dy, Modifiers: mods})
	}
}

// pollTouches maps touches to pointers 1-9.
func (in *inputState) pollTouches(scene *pencil.Scene, mods pencil.KeyModifiers) {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	var active [maxTouches]bool
	for _, tid := range in.touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		x, y := float64(tx), float64(ty)
		if inpututil.TouchPressDuration(tid) == 1 {
			in.touchLast[slot] = [2]float64{x, y}
			scene.DispatchPointer(pencil.PointerInput{ID: slot, Kind: pencil.PointerMove, X: x, Y: y, Modifiers: mods})
			scene.DispatchPointer(pencil.PointerInput{ID: slot, Kind: pencil.PointerDown, X: x, Y: y, Modifiers: mods})
			continue
		}
		if last := in.touchLast[slot]; last != [2]float64{x, y} {
			in.touchLast[slot] = [2]float64{x, y}
			scene.DispatchPointer(pencil.PointerInput{ID: slot, Kind: pencil.PointerMove, X: x, Y: y, Modifiers: mods})
		}
	}
	for i := 1; i < maxTouches; i++ {
		if in.touchUsed[i] && !active[i] {
			last := in.touchLast[i]
			scene.DispatchPointer(pencil.PointerInput{ID: i, Kind: pencil.PointerUp, X: last[0], Y: last[1], Modifiers: mods})
			scene.DispatchPointer(pencil.PointerInput{ID: i, Kind: pencil.PointerCancel, X: last[0], Y: last[1], Modifiers: mods})
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot returns the pointer slot of tid, allocating one if needed.
// It returns -1 when every slot is taken.
func (in *inputState) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxTouches; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxTouches; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

func (in *inputState) pollKeys(scene *pencil.Scene, mods pencil.KeyModifiers) {
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		scene.DispatchKey(pencil.KeyInput{Kind: pencil.KeyDown, Key: keyName(k, mods), Code: k.String(), Modifiers: mods})
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		scene.DispatchKey(pencil.KeyInput{Kind: pencil.KeyUp, Key: keyName(k, mods), Code: k.String(), Modifiers: mods})
	}
}

// keyName returns the logical key: a lower or upper case character for
// letters and digits, " " for space and the ebiten name otherwise.
func keyName(k ebiten.Key, mods pencil.KeyModifiers) string {
	if k == ebiten.KeySpace {
		return " "
	}
	name := k.String()
	if strings.HasPrefix(name, "Digit") {
		return strings.TrimPrefix(name, "Digit")
	}
	if len(name) == 1 {
		if mods.Has(pencil.ModShift) {
			return name
		}
		return strings.ToLower(name)
	}
	return name
}
