package ruffle

import (
	"math"
)

// NativeFunc is a scripted method implementation: receiver clip, execution
// context, argument list. It returns a script value; only coercion
// failures and fatal conditions surface as errors, everything else is a
// warn-and-no-op.
type NativeFunc func(c *Clip, ctx *Context, args []Value) (Value, error)

// clipMethods is the scripted method table of the display-list control
// surface. This is the entire script-facing surface.
var clipMethods = map[string]NativeFunc{
	"attachMovie":          attachMovie,
	"createEmptyMovieClip": createEmptyMovieClip,
	"createTextField":      createTextField,
	"duplicateMovieClip":   duplicateMovieClip,
	"getBounds":            getBounds,
	"getBytesLoaded":       getBytesLoaded,
	"getBytesTotal":        getBytesTotal,
	"getNextHighestDepth":  getNextHighestDepth,
	"getRect":              getRect,
	"globalToLocal":        globalToLocal,
	"gotoAndPlay":          gotoAndPlay,
	"gotoAndStop":          gotoAndStop,
	"hitTest":              hitTest,
	"loadMovie":            loadMovie,
	"loadVariables":        loadVariables,
	"localToGlobal":        localToGlobal,
	"nextFrame":            nextFrame,
	"play":                 play,
	"prevFrame":            prevFrame,
	"removeMovieClip":      removeMovieClip,
	"startDrag":            startDrag,
	"stop":                 stopClip,
	"stopDrag":             stopDrag,
	"swapDepths":           swapDepths,
	"toString":             clipToString,
	"unloadMovie":          unloadMovie,
	"beginFill":            beginFill,
	"beginGradientFill":    beginGradientFill,
	"moveTo":               moveTo,
	"lineTo":               lineTo,
	"curveTo":              curveTo,
	"endFill":              endFill,
	"lineStyle":            lineStyle,
	"clear":                clearDrawing,
}

// MovieClipMethods returns the scripted method table. Callers must not
// mutate the returned map.
func MovieClipMethods() map[string]NativeFunc {
	return clipMethods
}

// Dispatch routes a scripted method call to its operation. The receiver
// is downcast once here: a receiver that does not wrap a display clip
// yields undefined, as does an unknown method name.
func Dispatch(receiver Value, name string, ctx *Context, args []Value) (Value, error) {
	if receiver.kind != valueObject {
		return Undefined(), nil
	}
	c := receiver.o.Clip()
	if c == nil {
		return Undefined(), nil
	}
	fn, ok := clipMethods[name]
	if !ok {
		return Undefined(), nil
	}
	return fn(c, ctx, args)
}

// arg returns args[i], or undefined past the end.
func arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Undefined()
}

// postInstantiate applies the init object's properties to a freshly
// inserted clip's script object and runs the post-instantiation hook.
func (ctx *Context) postInstantiate(c *Clip, init *Object) {
	if init != nil {
		obj := c.Object()
		for _, k := range init.Keys() {
			obj.Set(k, init.Get(k))
		}
	}
	if ctx.OnInstantiate != nil {
		ctx.OnInstantiate(c)
	}
}

// --- Tree mutation ---

// attachMovie(exportName, newName, depth, initObject?)
func attachMovie(c *Clip, ctx *Context, args []Value) (Value, error) {
	if len(args) < 3 {
		logger().Error("attachMovie: too few parameters")
		return Undefined(), nil
	}
	exportName, err := args[0].CoerceToString()
	if err != nil {
		return Undefined(), err
	}
	newName, err := args[1].CoerceToString()
	if err != nil {
		return Undefined(), err
	}
	d, err := args[2].CoerceToI32()
	if err != nil {
		return Undefined(), err
	}
	depth := depthFromScript(d)
	if !validDynamicDepth(depth) {
		return Undefined(), nil
	}
	if ctx.Library == nil {
		logger().Warn("attachMovie: no content source", "export", exportName)
		return Undefined(), nil
	}
	child, err := ctx.Library.InstantiateByExportName(exportName)
	if err != nil {
		logger().Warn("unable to attach", "export", exportName, "error", err)
		return Undefined(), nil
	}
	child.SetName(newName)
	c.addChildAtDepth(child, depth)
	// Only a plain object argument carries init properties.
	var init *Object
	if v := arg(args, 3); v.kind == valueObject {
		init = v.o
	}
	ctx.postInstantiate(child, init)
	child.RunFrame()
	return ObjectValue(child.Object()), nil
}

// createEmptyMovieClip(newName, depth)
// The clip has no content definition; insertion and initialization follow
// the same path as attachMovie.
func createEmptyMovieClip(c *Clip, ctx *Context, args []Value) (Value, error) {
	if len(args) < 2 {
		logger().Error("createEmptyMovieClip: too few parameters")
		return Undefined(), nil
	}
	newName, err := args[0].CoerceToString()
	if err != nil {
		return Undefined(), err
	}
	d, err := args[1].CoerceToI32()
	if err != nil {
		return Undefined(), err
	}
	child := newClip(nil, newName)
	c.addChildAtDepth(child, depthFromScript(d))
	ctx.postInstantiate(child, nil)
	child.RunFrame()
	return ObjectValue(child.Object()), nil
}

// createTextField(name, depth, x, y, w, h)
func createTextField(c *Clip, ctx *Context, args []Value) (Value, error) {
	depth, err := arg(args, 1).CoerceToF64()
	if err != nil {
		return Undefined(), err
	}
	x, err := arg(args, 2).CoerceToF64()
	if err != nil {
		return Undefined(), err
	}
	y, err := arg(args, 3).CoerceToF64()
	if err != nil {
		return Undefined(), err
	}
	w, err := arg(args, 4).CoerceToF64()
	if err != nil {
		return Undefined(), err
	}
	h, err := arg(args, 5).CoerceToF64()
	if err != nil {
		return Undefined(), err
	}
	name, err := arg(args, 0).CoerceToString()
	if err != nil {
		return Undefined(), err
	}

	field := newClip(&ContentDef{
		Kind:   ContentText,
		Bounds: NewBounds(0, 0, TwipsFromPixels(w), TwipsFromPixels(h)),
	}, name)
	field.matrix.TX = TwipsFromPixels(x)
	field.matrix.TY = TwipsFromPixels(y)
	c.addChildAtDepth(field, depthFromScript(f64ToWrappingI32(depth)))
	ctx.postInstantiate(field, nil)

	// The field instance is only returned on version 8+ content.
	if ctx.Version >= 8 {
		return ObjectValue(field.Object()), nil
	}
	return Undefined(), nil
}

// duplicateMovieClip(newName, depth, initObject?)
// The scripted method uses the biased dynamic depth range.
func duplicateMovieClip(c *Clip, ctx *Context, args []Value) (Value, error) {
	return DuplicateWithDepthBias(c, ctx, args, DepthBias)
}

// DuplicateWithDepthBias is the shared duplicate implementation. The
// scripted method passes DepthBias; the timeline clone opcode passes 0.
func DuplicateWithDepthBias(c *Clip, ctx *Context, args []Value, depthBias Depth) (Value, error) {
	if len(args) < 2 {
		logger().Error("duplicateMovieClip: too few parameters")
		return Undefined(), nil
	}
	newName, err := args[0].CoerceToString()
	if err != nil {
		return Undefined(), err
	}
	d, err := args[1].CoerceToI32()
	if err != nil {
		return Undefined(), err
	}
	depth := d + depthBias

	// The root has no parent and cannot be duplicated.
	parent := c.parent
	if parent == nil {
		return Undefined(), nil
	}
	if !validDynamicDepth(depth) {
		return Undefined(), nil
	}
	if c.content == nil || ctx.Library == nil {
		logger().Warn("unable to duplicate clip", "name", c.name)
		return Undefined(), nil
	}
	dup, err := ctx.Library.InstantiateByID(c.content.ID)
	if err != nil {
		logger().Warn("unable to duplicate clip", "name", c.name, "error", err)
		return Undefined(), nil
	}
	dup.SetName(newName)
	parent.addChildAtDepth(dup, depth)

	// The duplicate inherits the source's transform and color transform.
	// No other script-visible state carries over.
	dup.SetMatrix(c.matrix)
	dup.SetColorTransform(c.colorTransform)

	var init *Object
	if v := arg(args, 2); !v.IsUndefined() {
		init = v.CoerceToObject()
	}
	ctx.postInstantiate(dup, init)
	dup.RunFrame()
	return ObjectValue(dup.Object()), nil
}

// removeMovieClip()
// The scripted method uses the biased depth range; the timeline remove
// opcode passes bias 0.
func removeMovieClip(c *Clip, ctx *Context, args []Value) (Value, error) {
	return RemoveWithDepthBias(c, DepthBias), nil
}

// RemoveWithDepthBias removes the clip when its biased depth falls inside
// the removable range. Timeline-placed clips sit at negative internal
// depths and never qualify, though swapDepths can move one into range.
func RemoveWithDepthBias(c *Clip, depthBias Depth) Value {
	depth := c.depth + depthBias
	if removableDepth(depth) {
		parent := c.parent
		if parent == nil {
			return Undefined()
		}
		parent.removeChild(c)
	}
	return Undefined()
}

// swapDepths(depthOrTarget)
func swapDepths(c *Clip, ctx *Context, args []Value) (Value, error) {
	v := arg(args, 0)
	parent := c.parent
	if parent == nil {
		return Undefined(), nil
	}

	var depth Depth
	haveDepth := false
	if v.IsNumber() {
		depth = f64ToWrappingI32(v.Num()) + DepthBias
		haveDepth = true
	} else {
		target, err := ctx.ResolveTarget(c, v)
		if err != nil {
			return Undefined(), err
		}
		switch {
		case target == nil:
			logger().Warn("swapDepths: invalid target")
		case target.parent == nil:
			// A parentless target (the root) swaps nothing and stays
			// silent.
		case target.parent != parent:
			logger().Warn("swapDepths: objects do not have the same parent")
		default:
			depth = target.depth
			haveDepth = true
		}
	}

	if haveDepth {
		if depth < 0 || depth > MaxDepth {
			return Undefined(), nil
		}
		if depth != c.depth {
			parent.swapChildToDepth(c, depth)
		}
	}
	return Undefined(), nil
}

// getNextHighestDepth(), available from version 7 content onward.
// The returned script depth never goes below 0.
func getNextHighestDepth(c *Clip, ctx *Context, args []Value) (Value, error) {
	if ctx.Version < 7 {
		return Undefined(), nil
	}
	var highest Depth
	if hd, ok := c.HighestDepth(); ok {
		highest = hd
	}
	next := highest - (DepthBias - 1)
	if next < 0 {
		next = 0
	}
	return Number(float64(next)), nil
}

// unloadMovie()
func unloadMovie(c *Clip, ctx *Context, args []Value) (Value, error) {
	c.unload()
	return Undefined(), nil
}

// --- Timeline ---

func gotoAndPlay(c *Clip, ctx *Context, args []Value) (Value, error) {
	return gotoFrame(c, ctx, args, false, 0)
}

func gotoAndStop(c *Clip, ctx *Context, args []Value) (Value, error) {
	return gotoFrame(c, ctx, args, true, 0)
}

// GotoFrameWithOffset is the shared goto implementation. sceneOffset is a
// nonzero adjustment only for the multi-scene opcode entry point.
func GotoFrameWithOffset(c *Clip, ctx *Context, args []Value, stop bool, sceneOffset uint16) (Value, error) {
	return gotoFrame(c, ctx, args, stop, sceneOffset)
}

func gotoFrame(c *Clip, ctx *Context, args []Value, stop bool, sceneOffset uint16) (Value, error) {
	v := arg(args, 0)
	if v.IsNumber() && v.Num() == math.Trunc(v.Num()) {
		// 1-based frame number. Converted with wrapping arithmetic; a
		// negative 0-based result makes the whole call a no-op.
		frame := f64ToWrappingI32(v.Num())
		frame -= 1
		frame += int32(sceneOffset)
		if frame >= 0 {
			f := frame
			if f < math.MaxInt32 {
				f++
			}
			c.GotoFrame(uint16(f), stop)
		}
		return Undefined(), nil
	}
	// Anything else is coerced to a string and resolved as a frame label.
	// This includes numbers with a fractional part, which never match.
	label, err := v.CoerceToString()
	if err != nil {
		return Undefined(), err
	}
	if frame, ok := c.FrameLabel(label); ok {
		frame += sceneOffset
		c.GotoFrame(frame, stop)
	}
	return Undefined(), nil
}

func play(c *Clip, ctx *Context, args []Value) (Value, error) {
	c.Play()
	return Undefined(), nil
}

func stopClip(c *Clip, ctx *Context, args []Value) (Value, error) {
	c.Stop()
	return Undefined(), nil
}

func nextFrame(c *Clip, ctx *Context, args []Value) (Value, error) {
	c.NextFrame()
	return Undefined(), nil
}

func prevFrame(c *Clip, ctx *Context, args []Value) (Value, error) {
	c.PrevFrame()
	return Undefined(), nil
}

// --- Coordinates, bounds, hit testing ---

// localToGlobal(point). The point object's x and y must already be
// numbers: no coercion is applied and the prototype chain is not
// searched.
func localToGlobal(c *Clip, ctx *Context, args []Value) (Value, error) {
	return transformPointObject(c, args, "localToGlobal", (*Clip).LocalToGlobal)
}

// globalToLocal(point), the inverse direction with the same argument
// rules.
func globalToLocal(c *Clip, ctx *Context, args []Value) (Value, error) {
	return transformPointObject(c, args, "globalToLocal", (*Clip).GlobalToLocal)
}

func transformPointObject(c *Clip, args []Value, op string, apply func(*Clip, Point) Point) (Value, error) {
	v := arg(args, 0)
	if v.kind != valueObject {
		logger().Warn(op + ": missing point parameter")
		return Undefined(), nil
	}
	point := v.o
	xv, yv := point.Get("x"), point.Get("y")
	if !xv.IsNumber() || !yv.IsNumber() {
		logger().Warn(op + ": invalid x and y properties")
		return Undefined(), nil
	}
	out := apply(c, PointFromPixels(xv.Num(), yv.Num()))
	point.Set("x", Number(out.X.Pixels()))
	point.Set("y", Number(out.Y.Pixels()))
	return Undefined(), nil
}

// getBounds(targetCoordinateSpace?)
func getBounds(c *Clip, ctx *Context, args []Value) (Value, error) {
	var target *Clip
	if len(args) == 0 {
		target = c
	} else {
		v := args[0]
		switch {
		case v.kind == valueString && v.s == "":
			target = nil
		case v.kind == valueObject && v.o.Clip() != nil:
			target = v.o.Clip()
		default:
			path, err := v.CoerceToString()
			if err != nil {
				return Undefined(), err
			}
			target = resolveTargetPath(c, path)
		}
	}
	if target == nil {
		return Undefined(), nil
	}

	bounds := c.BoundsLocal()
	var out Bounds
	if target == c {
		// Own coordinate space: no box transform needed.
		out = bounds
	} else {
		// Transform the box's corner representation into the target's
		// space. Looser than re-deriving a tight box, and deliberately so.
		m := target.GlobalToLocalMatrix().Mul(c.LocalToGlobalMatrix())
		out = bounds.Transform(m)
	}

	obj := NewObject()
	obj.Set("xMin", Number(out.XMin.Pixels()))
	obj.Set("yMin", Number(out.YMin.Pixels()))
	obj.Set("xMax", Number(out.XMax.Pixels()))
	obj.Set("yMax", Number(out.YMax.Pixels()))
	return ObjectValue(obj), nil
}

// getRect(targetCoordinateSpace?)
// TODO: exclude stroke widths once edge bounds are tracked separately
// from shape bounds; until then this matches getBounds.
func getRect(c *Clip, ctx *Context, args []Value) (Value, error) {
	return getBounds(c, ctx, args)
}

// hitTest implements both forms: (x, y, shapeFlag?) against a root-space
// point, and (target) against another clip's bounds. Only bounding-box
// intersection is performed; the shape flag falls back to the box with a
// warning.
func hitTest(c *Clip, ctx *Context, args []Value) (Value, error) {
	if len(args) > 1 {
		x, err := args[0].CoerceToF64()
		if err != nil {
			return Undefined(), err
		}
		y, err := args[1].CoerceToF64()
		if err != nil {
			return Undefined(), err
		}
		if arg(args, 2).AsBool() {
			logger().Warn("hitTest: shape flag ignored, using bounding box")
		}
		if !math.IsInf(x, 0) && !math.IsNaN(x) && !math.IsInf(y, 0) && !math.IsNaN(y) {
			// The documented "stage coordinates" are actually root
			// coordinates, and the root can be moved, so transform
			// through the root rather than assuming a fixed frame.
			point := c.Root().LocalToGlobal(PointFromPixels(x, y))
			return Bool(c.HitTestPoint(point)), nil
		}
	} else if len(args) == 1 {
		if other := args[0].CoerceToObject().Clip(); other != nil {
			return Bool(other.WorldBounds().Intersects(c.WorldBounds())), nil
		}
	}
	return Bool(false), nil
}

// toString(): the clip's dotted target path.
func clipToString(c *Clip, ctx *Context, args []Value) (Value, error) {
	return String(c.Path()), nil
}

func getBytesLoaded(c *Clip, ctx *Context, args []Value) (Value, error) {
	if c.loadedBytes > 0 {
		return Number(float64(c.loadedBytes)), nil
	}
	return getBytesTotal(c, ctx, args)
}

// getBytesTotal(). Loaded always equals total for content that was never
// streamed.
func getBytesTotal(c *Clip, ctx *Context, args []Value) (Value, error) {
	if c.content != nil && c.content.ByteSize > 0 {
		return Number(float64(c.content.ByteSize)), nil
	}
	return Number(1), nil
}

// --- Drag ---

// startDrag(lockCenter?, left?, top?, right?, bottom?). A constraint
// applies only when all four edges are given; inverted edges are
// normalized so the smaller value wins.
func startDrag(c *Clip, ctx *Context, args []Value) (Value, error) {
	lockCenter := arg(args, 0).AsBool()
	var constraint *Bounds
	if len(args) > 4 {
		left, err := args[1].CoerceToF64()
		if err != nil {
			return Undefined(), err
		}
		top, err := args[2].CoerceToF64()
		if err != nil {
			return Undefined(), err
		}
		right, err := args[3].CoerceToF64()
		if err != nil {
			return Undefined(), err
		}
		bottom, err := args[4].CoerceToF64()
		if err != nil {
			return Undefined(), err
		}
		if right < left {
			left, right = right, left
		}
		if bottom < top {
			top, bottom = bottom, top
		}
		b := NewBounds(
			TwipsFromPixels(left), TwipsFromPixels(top),
			TwipsFromPixels(right), TwipsFromPixels(bottom),
		)
		constraint = &b
	}
	ctx.Stage.StartDrag(c, lockCenter, constraint)
	return Undefined(), nil
}

// stopDrag(). It does not matter which clip this is called on; it stops
// whatever drag is active.
func stopDrag(c *Clip, ctx *Context, args []Value) (Value, error) {
	ctx.Stage.StopDrag()
	return Undefined(), nil
}

// --- Loading ---

// loadMovie(url, method?): build a request from the caller's locals,
// submit the fetch, and register the continuation with the load manager.
// Fire-and-forget; the caller never blocks.
func loadMovie(c *Clip, ctx *Context, args []Value) (Value, error) {
	req, err := loadRequest(ctx, args)
	if err != nil {
		return Undefined(), err
	}
	if ctx.Navigator == nil {
		logger().Warn("loadMovie: no navigator")
		return Undefined(), nil
	}
	fetch := ctx.Navigator.Fetch(req)
	ctx.Navigator.Spawn(ctx.Loads.RegisterMovieLoad(c, fetch))
	return Undefined(), nil
}

// loadVariables(url, method?). The continuation is keyed to the clip's
// script-facing object rather than the clip.
func loadVariables(c *Clip, ctx *Context, args []Value) (Value, error) {
	req, err := loadRequest(ctx, args)
	if err != nil {
		return Undefined(), err
	}
	if ctx.Navigator == nil {
		logger().Warn("loadVariables: no navigator")
		return Undefined(), nil
	}
	fetch := ctx.Navigator.Fetch(req)
	ctx.Navigator.Spawn(ctx.Loads.RegisterFormLoad(c.Object(), fetch))
	return Undefined(), nil
}

func loadRequest(ctx *Context, args []Value) (FetchRequest, error) {
	target, err := arg(args, 0).CoerceToString()
	if err != nil {
		return FetchRequest{}, err
	}
	methodStr, err := arg(args, 1).CoerceToString()
	if err != nil {
		return FetchRequest{}, err
	}
	return buildRequest(target, navigationMethodFromString(methodStr), ctx.Locals)
}

// --- Drawing ---

// lineStyle(width?, rgb?, alpha?, pixelHinting?, scaleMode?, caps?,
// joints?, miterLimit?). Calling with no arguments turns strokes off.
func lineStyle(c *Clip, ctx *Context, args []Value) (Value, error) {
	if len(args) == 0 {
		c.SetLineStyle(nil)
		return Undefined(), nil
	}
	widthPx, err := args[0].CoerceToF64()
	if err != nil {
		return Undefined(), err
	}
	width := TwipsFromPixels(clampF64(widthPx, 0, 255))

	// Absent color means opaque black.
	color := Color{A: 255}
	if len(args) > 1 {
		rgb, err := args[1].CoerceToU32()
		if err != nil {
			return Undefined(), err
		}
		alpha := 100.0
		if len(args) > 2 {
			alpha, err = args[2].CoerceToF64()
			if err != nil {
				return Undefined(), err
			}
			alpha = clampF64(alpha, 0, 100)
		}
		color = ColorFromRGB(rgb, uint8(alpha/100*255))
	}

	pixelHinted := arg(args, 3).AsBool()

	var allowScaleX, allowScaleY bool
	switch coerceStringOrEmpty(arg(args, 4)) {
	case "normal":
		allowScaleX, allowScaleY = true, true
	case "vertical":
		allowScaleX, allowScaleY = true, false
	case "horizontal":
		allowScaleX, allowScaleY = false, true
	}

	capStyle := CapRound
	switch coerceStringOrEmpty(arg(args, 5)) {
	case "square":
		capStyle = CapSquare
	case "none":
		capStyle = CapNone
	}

	join := JoinRound
	miterLimit := 0.0
	switch coerceStringOrEmpty(arg(args, 6)) {
	case "miter":
		join = JoinMiter
		miterLimit = 3
		if len(args) > 7 {
			limit, err := args[7].CoerceToF64()
			if err != nil {
				return Undefined(), err
			}
			miterLimit = clampF64(limit, 0, 255)
		}
	case "bevel":
		join = JoinBevel
	}

	c.SetLineStyle(&LineStyle{
		Width:         width,
		Color:         color,
		StartCap:      capStyle,
		EndCap:        capStyle,
		Join:          join,
		MiterLimit:    miterLimit,
		AllowScaleX:   allowScaleX,
		AllowScaleY:   allowScaleY,
		IsPixelHinted: pixelHinted,
	})
	return Undefined(), nil
}

// beginFill(rgb?, alpha?). Calling with no arguments clears the fill.
func beginFill(c *Clip, ctx *Context, args []Value) (Value, error) {
	if len(args) == 0 {
		c.SetFillStyle(nil)
		return Undefined(), nil
	}
	rgb, err := args[0].CoerceToU32()
	if err != nil {
		return Undefined(), err
	}
	alpha := 100.0
	if len(args) > 1 {
		alpha, err = args[1].CoerceToF64()
		if err != nil {
			return Undefined(), err
		}
		alpha = clampF64(alpha, 0, 100)
	}
	c.SetFillStyle(&FillStyle{
		Kind:  FillSolid,
		Color: ColorFromRGB(rgb, uint8(alpha/100*255)),
	})
	return Undefined(), nil
}

// beginGradientFill(fillType, colors, alphas, ratios, matrix, spread?,
// interpolation?, focalPoint?). Mismatched array lengths and unknown fill
// types abort the assignment with a warning.
func beginGradientFill(c *Clip, ctx *Context, args []Value) (Value, error) {
	if len(args) < 5 {
		c.SetFillStyle(nil)
		return Undefined(), nil
	}
	method, err := args[0].CoerceToString()
	if err != nil {
		return Undefined(), err
	}
	colors := args[1].CoerceToObject().Array()
	alphas := args[2].CoerceToObject().Array()
	ratios := args[3].CoerceToObject().Array()
	if len(colors) != len(alphas) || len(colors) != len(ratios) {
		logger().Warn("beginGradientFill: colors, alphas and ratios differ in length")
		return Undefined(), nil
	}

	stops := make([]GradientStop, 0, len(colors))
	for i := range colors {
		ratio, err := ratios[i].CoerceToF64()
		if err != nil {
			return Undefined(), err
		}
		rgb, err := colors[i].CoerceToU32()
		if err != nil {
			return Undefined(), err
		}
		alpha, err := alphas[i].CoerceToF64()
		if err != nil {
			return Undefined(), err
		}
		stops = append(stops, GradientStop{
			Ratio: uint8(clampF64(ratio, 0, 255)),
			Color: ColorFromRGB(rgb, uint8(clampF64(alpha, 0, 100)/100*255)),
		})
	}

	matrix, err := gradientMatrixFromObject(args[4].CoerceToObject())
	if err != nil {
		return Undefined(), err
	}

	spread := SpreadPad
	switch coerceStringOrEmpty(arg(args, 5)) {
	case "reflect":
		spread = SpreadReflect
	case "repeat":
		spread = SpreadRepeat
	}

	interpolation := InterpolationRGB
	if coerceStringOrEmpty(arg(args, 6)) == "linearRGB" {
		interpolation = InterpolationLinearRGB
	}

	gradient := Gradient{
		Matrix:        matrix,
		Spread:        spread,
		Interpolation: interpolation,
		Stops:         stops,
	}
	style := &FillStyle{Gradient: gradient}
	switch method {
	case "linear":
		style.Kind = FillLinearGradient
	case "radial":
		if len(args) > 7 {
			focal, err := args[7].CoerceToF64()
			if err != nil {
				return Undefined(), err
			}
			style.Kind = FillFocalGradient
			style.FocalPoint = focal
		} else {
			style.Kind = FillRadialGradient
		}
	default:
		logger().Warn("beginGradientFill: invalid fill type", "type", method)
		return Undefined(), nil
	}
	c.SetFillStyle(style)
	return Undefined(), nil
}

// gradientGeomScale relates the gradient's design square (32768 twips
// wide) to pixel-space box dimensions.
const gradientGeomScale = 1638.4

// gradientMatrixFromObject builds a gradient matrix from either the
// {matrixType:"box", x, y, w, h, r} form or the direct a..ty form.
func gradientMatrixFromObject(o *Object) (Matrix, error) {
	if coerceStringOrEmpty(o.Get("matrixType")) == "box" {
		x, err := o.Get("x").CoerceToF64()
		if err != nil {
			return Matrix{}, err
		}
		y, err := o.Get("y").CoerceToF64()
		if err != nil {
			return Matrix{}, err
		}
		w, err := o.Get("w").CoerceToF64()
		if err != nil {
			return Matrix{}, err
		}
		h, err := o.Get("h").CoerceToF64()
		if err != nil {
			return Matrix{}, err
		}
		r, err := o.Get("r").CoerceToF64()
		if err != nil {
			return Matrix{}, err
		}
		sin, cos := math.Sincos(r)
		return Matrix{
			A:  cos * w / gradientGeomScale,
			B:  sin * w / gradientGeomScale,
			C:  -sin * h / gradientGeomScale,
			D:  cos * h / gradientGeomScale,
			TX: TwipsFromPixels(x + w/2),
			TY: TwipsFromPixels(y + h/2),
		}, nil
	}

	a, err := o.Get("a").CoerceToF64()
	if err != nil {
		return Matrix{}, err
	}
	b, err := o.Get("b").CoerceToF64()
	if err != nil {
		return Matrix{}, err
	}
	cc, err := o.Get("c").CoerceToF64()
	if err != nil {
		return Matrix{}, err
	}
	d, err := o.Get("d").CoerceToF64()
	if err != nil {
		return Matrix{}, err
	}
	tx, err := o.Get("tx").CoerceToF64()
	if err != nil {
		return Matrix{}, err
	}
	ty, err := o.Get("ty").CoerceToF64()
	if err != nil {
		return Matrix{}, err
	}
	return Matrix{
		A: a, B: b, C: cc, D: d,
		TX: TwipsFromPixels(tx),
		TY: TwipsFromPixels(ty),
	}, nil
}

// moveTo(x, y)
func moveTo(c *Clip, ctx *Context, args []Value) (Value, error) {
	return appendPathCommand(c, args, DrawMoveTo)
}

// lineTo(x, y)
func lineTo(c *Clip, ctx *Context, args []Value) (Value, error) {
	return appendPathCommand(c, args, DrawLineTo)
}

func appendPathCommand(c *Clip, args []Value, kind DrawKind) (Value, error) {
	if len(args) < 2 {
		return Undefined(), nil
	}
	x, err := args[0].CoerceToF64()
	if err != nil {
		return Undefined(), err
	}
	y, err := args[1].CoerceToF64()
	if err != nil {
		return Undefined(), err
	}
	c.AppendDrawCommand(DrawCommand{Kind: kind, Anchor: PointFromPixels(x, y)})
	return Undefined(), nil
}

// curveTo(controlX, controlY, anchorX, anchorY)
func curveTo(c *Clip, ctx *Context, args []Value) (Value, error) {
	if len(args) < 4 {
		return Undefined(), nil
	}
	x1, err := args[0].CoerceToF64()
	if err != nil {
		return Undefined(), err
	}
	y1, err := args[1].CoerceToF64()
	if err != nil {
		return Undefined(), err
	}
	x2, err := args[2].CoerceToF64()
	if err != nil {
		return Undefined(), err
	}
	y2, err := args[3].CoerceToF64()
	if err != nil {
		return Undefined(), err
	}
	c.AppendDrawCommand(DrawCommand{
		Kind:    DrawCurveTo,
		Control: PointFromPixels(x1, y1),
		Anchor:  PointFromPixels(x2, y2),
	})
	return Undefined(), nil
}

// endFill() clears only the fill style; accumulated geometry stays.
func endFill(c *Clip, ctx *Context, args []Value) (Value, error) {
	c.SetFillStyle(nil)
	return Undefined(), nil
}

// clear() resets fill, line, and the command sequence together.
func clearDrawing(c *Clip, ctx *Context, args []Value) (Value, error) {
	c.ClearDrawing()
	return Undefined(), nil
}

// --- Small helpers ---

// clampF64 pins v to [lo, hi]. NaN clamps to hi, matching the legacy
// player's min-then-max chain, so no NaN ever reaches an integer
// conversion.
func clampF64(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return hi
	}
	return math.Min(math.Max(v, lo), hi)
}

// coerceStringOrEmpty coerces v to a string, treating failures and
// undefined as "no argument" so enum-string matching falls through to the
// default case.
func coerceStringOrEmpty(v Value) string {
	if v.IsUndefined() {
		return ""
	}
	s, err := v.CoerceToString()
	if err != nil {
		return ""
	}
	return s
}
