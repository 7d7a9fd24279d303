// Package skyisle is a small 3D scene core for [Ebitengine] that renders a
// procedurally generated floating island.
//
// Skyisle provides a node graph with a transform hierarchy, procedural mesh
// generators, an orbit camera, a flocking butterfly swarm, a flying unicorn
// with a particle trail, a day/night sky and a CPU-projected triangle
// renderer with a bloom pass.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := skyisle.NewScene()
//	skyisle.BuildFloatingIsland(scene, skyisle.DefaultSceneConfig())
//	skyisle.Run(scene, skyisle.RunConfig{
//		Title: "Floating Island", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Tick] and [Scene.Draw] directly:
//
//	type Game struct{ scene *skyisle.Scene }
//
//	func (g *Game) Update() error        { g.scene.Tick(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { g.scene.Resize(w, h); return w, h }
//
// Headless programs and tests can drive the same tick with a [Loop].
//
// # Scene graph
//
// Every element is a [Node] stored in a [Graph] and addressed by a
// [NodeID]. Handles carry a generation, so a handle to a removed node is
// detected instead of silently aliasing a new one. Children inherit their
// parent's transform.
//
//	g := scene.Graph()
//	rock := skyisle.NewMesh("rock", skyisle.IcosahedronGeometry(1), skyisle.DefaultMaterial())
//	id := g.Add(scene.Root(), rock)
//	g.Node(id).SetPosition(skyisle.V3(0, 4, 0))
//
// # Frame order
//
// [Scene.Tick] runs controls first (queued input, camera damping), then
// every system registered with [Scene.AddUpdater] in registration order,
// then per-node OnUpdate callbacks. [Scene.Draw] renders the state the last
// tick left behind and applies post effects.
//
// # Randomness
//
// All generators and animations draw from an explicit [RNG], so a scene
// built from the same seed is identical run to run.
//
// [Ebitengine]: https://ebitengine.org
package skyisle
