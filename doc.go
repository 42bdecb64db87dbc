// Package pencil is a retained-mode 2D scene graph for interactive
// drawings.
//
// Pencil provides the component tree, transform hierarchy, vector shapes,
// text, images, sprite animation, pointer and keyboard input, focus,
// tweens, and JSON/YAML serialization that an interactive canvas needs.
// Rendering goes through a [Surface]: [RasterSurface] paints offscreen with
// [gg], and the ebitenhost package draws into an [Ebitengine] window.
//
// # Quick start
//
// The simplest way to get a window is ebitenhost.NewGame, which creates
// the scene and the game loop for you:
//
//	game, _ := ebitenhost.NewGame(pencil.DefaultConfig())
//	scene := game.Scene()
//	scene.Attach(pencil.NewRectangle(pencil.Pos(20, 20), 80, 40,
//		pencil.Options{pencil.OptFill: "red"}))
//	game.Run()
//
// Without a window, render onto a [RasterSurface] and save it:
//
//	surface := pencil.NewRasterSurface(400, 300, 1, nil)
//	scene, _ := pencil.NewScene(surface, pencil.DefaultConfig())
//	// ... attach shapes ...
//	scene.Frame()
//	surface.SavePNG("out.png")
//
// # Component tree
//
// Every shape embeds a [*Component]. Components form a tree rooted at the
// [Scene]. Children inherit their parent's transform and opacity, and are
// painted after it, in attach order.
//
// Create shapes with typed constructors: [NewContainer], [NewRectangle],
// [NewCircle], [NewArc], [NewLine], [NewPolygon], [NewRegularPolygon],
// [NewStar], [NewText], [NewImage], [NewSprite], [NewButton] and
// [NewSelect].
//
//	group := pencil.NewContainer(pencil.Pos(100, 100))
//	scene.Attach(group)
//
//	dot := pencil.NewCircle(pencil.Pos(0, 0), 10)
//	group.Attach(dot)
//
// Rotation is expressed in turns: 0.25 is a quarter turn clockwise.
//
// # Options
//
// Appearance is driven by [Options], a map merged over each type's
// defaults. Colors accept names, hex and rgb()/rgba() forms. Invalid values
// are rejected with an [InvalidOptionError].
//
// # Events
//
// Hosts feed raw device input through [Scene.DispatchPointer] and
// [Scene.DispatchKey]. The scene hit-tests it against what is actually
// painted and fires hover, down, up, click, grab, drag, drop, scroll and
// zoom events on components. Events bubble to ancestors until
// [Event.StopPropagation] is called.
//
//	dot.On(pencil.EventClick, func(ev *pencil.Event) {
//		dot.SetOption(pencil.OptFill, "orange")
//	})
//
// # Frames
//
// [Scene.Frame] applies finished resource loads, fires [EventDraw], paints
// the tree and then steps animations. [Scene.Run] calls it at the
// configured frame rate; ebitenhost calls it from Draw.
//
// # Serialization
//
// Any subtree encodes to JSON or YAML and can be rebuilt with [From],
// [FromJSON] or [FromYAML]. Custom types join the format with [Register].
//
// # Logging
//
// Pencil is silent by default. Install a [log/slog] logger with
// [SetLogger] to see resource failures and debug-mode frame statistics.
//
// [gg]: https://github.com/gogpu/gg
// [Ebitengine]: https://ebitengine.org
package pencil
