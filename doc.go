// Package ruffle implements the scripted display-list control surface of
// a legacy interactive timeline runtime on top of [Ebitengine].
//
// Movie clips form a tree rooted at [Stage.Root]. Each clip holds a
// depth-keyed child list, an independent timeline, an affine transform in
// twips (1/20 pixel), a color transform, and an accumulated vector
// drawing. Scripted operations reach clips through [Dispatch], which
// routes the classic method surface: attachMovie, duplicateMovieClip,
// swapDepths, gotoAndPlay, hitTest, startDrag, loadMovie, the drawing
// API, and the rest.
//
// # Quick start
//
// Drive a stage from an [ebiten.Game] via the [Game] adapter:
//
//	stage := ruffle.NewStage()
//	ctx := ruffle.NewContext(stage)
//	ctx.Library = library
//
//	game := &ruffle.Game{Stage: stage}
//	ebiten.RunGame(game)
//
// Scripted calls go through the dispatch layer:
//
//	root := ruffle.ObjectValue(stage.Root().Object())
//	ruffle.Dispatch(root, "createEmptyMovieClip", ctx,
//		[]ruffle.Value{ruffle.String("box"), ruffle.Number(1)})
//
// # Depths
//
// Script-visible depths are biased by 16384 internally, so script depth 0
// sits above all author-placed content. Only clips whose internal depth
// falls in the dynamic range can be removed by removeMovieClip.
//
// # Loading
//
// loadMovie and loadVariables fetch through a [Navigator] and re-enter
// the tree via the stage's [LoadManager], drained at the top of
// [Stage.Update]. All tree mutation stays on the update thread.
//
// Tweens (via [gween]) animate clip position, scale, and alpha; see
// [TweenGroup].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package ruffle
