package pencil

import "testing"

func testSheet(t *testing.T) *Spritesheet {
	t.Helper()
	sheet, err := ParseSpritesheet([]byte(`{"frames": {
		"f0": {"frame": {"x": 0, "y": 0, "w": 10, "h": 10}},
		"f1": {"frame": {"x": 10, "y": 0, "w": 10, "h": 10}},
		"f2": {"frame": {"x": 20, "y": 0, "w": 10, "h": 20}}
	}}`))
	if err != nil {
		t.Fatal(err)
	}
	sheet.Image = redSquare(30)
	return sheet
}

func TestSpriteLoops(t *testing.T) {
	sp := NewSprite(Pos(0, 0), "", "", 1, true)
	sp.SetSheet(testSheet(t))
	var loops int
	sp.On(EventLoop, func(*Event) { loops++ })

	want := []int{1, 2, 0, 1}
	for i, w := range want {
		sp.Step(uint64(i + 1))
		if got := sp.FrameIndex(); got != w {
			t.Errorf("step %d: frame %d, want %d", i+1, got, w)
		}
	}
	if loops != 1 {
		t.Errorf("loops = %d, want 1", loops)
	}
}

func TestSpriteEnds(t *testing.T) {
	sp := NewSprite(Pos(0, 0), "", "", 1, false)
	sp.SetSheet(testSheet(t))
	var ends int
	sp.On(EventEnd, func(*Event) { ends++ })
	for i := range 5 {
		sp.Step(uint64(i))
	}
	if sp.FrameIndex() != 2 || sp.Playing() || ends != 1 {
		t.Errorf("frame %d playing %v ends %d", sp.FrameIndex(), sp.Playing(), ends)
	}
	sp.Play()
	if sp.FrameIndex() != 0 || !sp.Playing() {
		t.Error("Play after the end should rewind")
	}
}

func TestSpriteFractionalSpeed(t *testing.T) {
	sp := NewSprite(Pos(0, 0), "", "", 0.5, true)
	sp.SetSheet(testSheet(t))
	sp.Step(1)
	if sp.FrameIndex() != 0 {
		t.Errorf("half speed should hold the frame: %d", sp.FrameIndex())
	}
	sp.Step(2)
	if sp.FrameIndex() != 1 {
		t.Errorf("frame = %d, want 1", sp.FrameIndex())
	}
	sp.Pause()
	sp.Step(3)
	sp.Step(4)
	if sp.FrameIndex() != 1 {
		t.Error("paused sprite advanced")
	}
}

func TestSpriteSizeFollowsFrame(t *testing.T) {
	sp := NewSprite(Pos(0, 0), "", "", 1, true)
	if w, h := sp.Size(); w != 0 || h != 0 {
		t.Errorf("unloaded size %v x %v", w, h)
	}
	if sp.ContainsPoint(Pos(1, 1)) {
		t.Error("unloaded sprite should not be hit")
	}
	sp.SetSheet(testSheet(t))
	sp.SetFrameIndex(2)
	if w, h := sp.Size(); w != 10 || h != 20 {
		t.Errorf("size %v x %v, want 10 x 20", w, h)
	}
	sp.SetFrameIndex(99)
	if sp.FrameIndex() != 2 {
		t.Error("SetFrameIndex should clamp")
	}
	if !sp.ContainsPoint(Pos(5, 15)) {
		t.Error("point on the frame should hit")
	}
}

func TestSpriteSelector(t *testing.T) {
	sp := NewSprite(Pos(0, 0), "", "f[12]", 1, true)
	sp.SetSheet(testSheet(t))
	if sp.FrameCount() != 2 {
		t.Errorf("FrameCount = %d, want 2", sp.FrameCount())
	}
}

func TestSpriteLoadsFromSheet(t *testing.T) {
	l := newFakeLoader()
	l.data["sheets/hero.json"] = []byte(`{"frames": {"a": {"frame": {"x": 0, "y": 0, "w": 4, "h": 4}}}, "meta": {"image": "hero.png"}}`)
	l.images["sheets/hero.png"] = redSquare(4)
	s, surf := newLoaderScene(t, l)

	sp := NewSprite(Pos(20, 20), "sheets/hero.json", "", 1, true)
	var ready int
	sp.On(EventReady, func(*Event) { ready++ })
	if err := s.Attach(sp); err != nil {
		t.Fatal(err)
	}
	s.Frame()
	waitIdle(t, s)
	if !sp.Loaded() || ready != 1 || sp.FrameCount() != 1 {
		t.Fatalf("loaded %v ready %d frames %d", sp.Loaded(), ready, sp.FrameCount())
	}
	s.Frame()
	assertPixel(t, surf, 21, 21, red)
}

func TestSpriteSheetWithoutImageFails(t *testing.T) {
	l := newFakeLoader()
	l.data["bare.json"] = []byte(`{"frames": {"a": {"frame": {"x": 0, "y": 0, "w": 4, "h": 4}}}}`)
	s, _ := newLoaderScene(t, l)
	sp := NewSprite(Pos(0, 0), "bare.json", "", 1, true)
	var failed bool
	sp.On(EventLoadFailed, func(*Event) { failed = true })
	if err := s.Attach(sp); err != nil {
		t.Fatal(err)
	}
	s.Frame()
	waitIdle(t, s)
	if !failed || sp.Loaded() {
		t.Error("sheet without an image should fail to load")
	}
}
