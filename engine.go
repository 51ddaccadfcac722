package orbit

import (
	"fmt"
	"time"
)

// EntityStore is the interface for optional ECS integration. When set
// on an Engine, point lifecycle and interaction events are forwarded
// to it.
type EntityStore interface {
	EmitEvent(event PointEvent)
}

// PointEventType identifies a kind of engine event.
type PointEventType uint8

const (
	EventHoverEnter   PointEventType = iota // pointer moved within threshold of a point
	EventHoverLeave                         // pointer left a hovered point
	EventSelect                             // point became selected
	EventDeselect                           // point lost selection
	EventPointAdded                         // point appended via AddRandom
	EventPointRemoved                       // point deleted; higher indices have shifted down
)

// PointEvent carries engine event data for the ECS bridge. ScreenX and
// ScreenY are the point's last projected position, zero when no
// projection has happened yet.
type PointEvent struct {
	Type    PointEventType
	Index   int
	ScreenX float64
	ScreenY float64
}

// Config configures an Engine. Zero fields use defaults.
type Config struct {
	Store StoreConfig
	// Projector defaults to NewPerspective().
	Projector Projector
	// CellSize is the spatial hash cell size in pixels.
	CellSize float64
	// Proximity is the hover/click threshold in pixels.
	Proximity float64
}

// Engine orchestrates point motion, projection, spatial indexing, and
// hover/selection state, emitting visual updates to a RenderSurface.
// It is driven by Tick and the pointer handlers, all on one goroutine;
// re-entrant calls from surface or store callbacks are undefined.
type Engine struct {
	store *PointStore
	proj  Projector
	index *SpatialIndex
	sel   selectionModel

	surface  RenderSurface
	entities EntityStore

	proximity float64
	showAll   bool

	handles    []AnnotationHandle
	screen     []ScreenPos
	queryBuf   []int
	textDirty  []bool
	styleDirty []bool

	lastCam      CameraState
	camValid     bool
	projStale    bool
	pointerX     float64
	pointerY     float64
	pointerValid bool

	batchDepth int

	debug bool
	stats tickStats
}

// NewEngine creates an engine that renders through surface, which must
// be non-nil.
func NewEngine(surface RenderSurface, cfg Config) *Engine {
	proj := cfg.Projector
	if proj == nil {
		proj = NewPerspective()
	}
	prox := cfg.Proximity
	if prox <= 0 {
		prox = DefaultProximity
	}
	return &Engine{
		store:     NewPointStore(cfg.Store),
		proj:      proj,
		index:     NewSpatialIndex(cfg.CellSize),
		sel:       newSelectionModel(),
		surface:   surface,
		proximity: prox,
	}
}

// --- Frame pipeline ---

// Tick advances one frame: motion, projection, spatial index rebuild,
// hover re-evaluation against the last pointer position, and the
// frame's annotation updates. Camera motion can change which point is
// nearest even when the pointer itself hasn't moved, so hover is
// re-evaluated every tick.
//
// A degenerate camera skips the entire pass — state is exactly as
// before the call — and returns ErrDegenerateCamera; the caller's loop
// should keep ticking.
func (e *Engine) Tick(deltaSeconds float64, cam CameraState) error {
	if err := cam.check(); err != nil {
		e.stats.skipped++
		return err
	}

	var t0 time.Time
	if e.debug {
		e.stats.texts = 0
		t0 = time.Now()
	}

	e.store.Advance(deltaSeconds)
	if e.debug {
		e.stats.advance = time.Since(t0)
	}

	e.lastCam = cam
	e.camValid = true
	e.projStale = true
	if err := e.refresh(); err != nil {
		return err
	}

	if e.pointerValid {
		e.applyHover(e.nearestWithin(e.pointerX, e.pointerY))
	}

	if e.debug {
		t0 = time.Now()
	}
	e.pushFrame()
	if e.debug {
		e.stats.visual = time.Since(t0)
		e.debugLog()
	}
	return nil
}

// refresh recomputes screen positions and rebuilds the spatial index.
// lastCam has already been validated by the caller that stored it.
func (e *Engine) refresh() error {
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}
	screen, err := e.proj.Project(e.screen[:0], e.store.Points(), e.lastCam)
	if err != nil {
		return err
	}
	e.screen = screen
	if e.debug {
		e.stats.project = time.Since(t0)
		t0 = time.Now()
	}
	e.index.Clear()
	for i := range e.screen {
		e.index.Insert(i, e.screen[i].X, e.screen[i].Y)
	}
	e.projStale = false
	if e.debug {
		e.stats.index = time.Since(t0)
	}
	return nil
}

// ensureCurrent lazily refreshes screen positions before a pointer
// event when no tick has done so since the last change.
func (e *Engine) ensureCurrent() {
	if !e.camValid || !e.projStale {
		return
	}
	_ = e.refresh()
}

// pushFrame applies the frame's annotation updates: every annotation
// tracks its point's screen position, and only labels that are visible
// this frame are reformatted. Show-all mode reformats every label and
// is O(n) by design.
func (e *Engine) pushFrame() {
	e.surface.BeginUpdate()
	for i := range e.screen {
		sp := e.screen[i]
		e.surface.SetPosition(e.handles[i], sp.X, sp.Y, sp.Depth)
	}
	if e.showAll {
		for i := range e.handles {
			e.applyText(i)
		}
	} else {
		if s := e.sel.selected; s >= 0 {
			e.applyText(s)
		}
		if h := e.sel.hovered; h >= 0 && h != e.sel.selected {
			e.applyText(h)
		}
	}
	e.surface.EndUpdate()
}

// --- Pointer events ---

// HandlePointerMove updates the hover slot from a screen-space pointer
// position. Screen positions are lazily refreshed first, so hover is
// correct even between ticks.
func (e *Engine) HandlePointerMove(x, y float64) {
	e.pointerX, e.pointerY = x, y
	e.pointerValid = true
	if !e.camValid {
		return
	}
	e.ensureCurrent()
	e.applyHover(e.nearestWithin(x, y))
}

// HandlePointerDown selects the nearest in-threshold point, replacing
// any prior selection. A press with no point in range clears the
// selection; pressing the selected point deselects it. Hover
// bookkeeping is updated from the same position but never overrides
// selected styling.
func (e *Engine) HandlePointerDown(x, y float64) {
	e.pointerX, e.pointerY = x, y
	e.pointerValid = true
	if !e.camValid {
		return
	}
	e.ensureCurrent()
	n := e.nearestWithin(x, y)
	e.applyHover(n)
	e.applySelect(n)
}

// nearestWithin returns the index of the nearest point within the
// proximity threshold of (x, y), or -1. The spatial index supplies a
// candidate superset; exact distances decide.
func (e *Engine) nearestWithin(x, y float64) int {
	e.queryBuf = e.index.QueryNear(e.queryBuf[:0], x, y, e.proximity)
	best := -1
	bestD := e.proximity * e.proximity
	for _, i := range e.queryBuf {
		dx := e.screen[i].X - x
		dy := e.screen[i].Y - y
		if d := dx*dx + dy*dy; d <= bestD {
			best, bestD = i, d
		}
	}
	return best
}

func (e *Engine) applyHover(n int) {
	old := e.sel.hovered
	if old == n {
		return
	}
	e.applyChanges(e.sel.setHover(n))
	if old >= 0 {
		e.emit(EventHoverLeave, old)
	}
	if n >= 0 {
		e.emit(EventHoverEnter, n)
	}
}

func (e *Engine) applySelect(n int) {
	old := e.sel.selected
	e.applyChanges(e.sel.toggleSelect(n))
	if now := e.sel.selected; now != old {
		if old >= 0 {
			e.emit(EventDeselect, old)
		}
		if now >= 0 {
			e.emit(EventSelect, now)
		}
	}
}

// applyChanges materializes visual intents through the surface, or
// defers them while a batch is open.
func (e *Engine) applyChanges(changes []StyleChange) {
	if len(changes) == 0 {
		return
	}
	if e.batchDepth > 0 {
		for _, c := range changes {
			e.textDirty[c.Index] = true
			e.styleDirty[c.Index] = true
		}
		return
	}
	e.surface.BeginUpdate()
	for _, c := range changes {
		e.surface.SetStyle(e.handles[c.Index], StyleFor(c.State, e.store.points[c.Index].Color))
		e.setText(c.Index)
	}
	e.surface.EndUpdate()
}

// applyText reformats one label, or defers it while a batch is open.
func (e *Engine) applyText(i int) {
	if e.batchDepth > 0 {
		e.textDirty[i] = true
		return
	}
	e.setText(i)
}

func (e *Engine) setText(i int) {
	e.surface.SetText(e.handles[i], e.labelFor(i))
	e.stats.texts++
}

// labelFor formats the annotation text for a point's current visual
// state. Idle points carry no label unless show-all mode is active.
// The selected label format takes permanent precedence until
// deselected.
func (e *Engine) labelFor(i int) string {
	st := e.sel.visualFor(i)
	if st == VisualIdle && !e.showAll {
		return ""
	}
	sp := ToSpherical(e.store.points[i].Pos)
	if st == VisualSelected {
		return fmt.Sprintf("[#%d] az %.1f el %.1f r %.1f", i, sp.Azimuth, sp.Elevation, sp.Radius)
	}
	return fmt.Sprintf("az %.1f el %.1f r %.1f", sp.Azimuth, sp.Elevation, sp.Radius)
}

func (e *Engine) emit(t PointEventType, i int) {
	if e.entities == nil {
		return
	}
	var sx, sy float64
	if i >= 0 && i < len(e.screen) {
		sx, sy = e.screen[i].X, e.screen[i].Y
	}
	e.entities.EmitEvent(PointEvent{Type: t, Index: i, ScreenX: sx, ScreenY: sy})
}

// --- Point lifecycle ---

// Generate replaces the point set with n random points, rebuilding all
// annotations and clearing hover and selection.
func (e *Engine) Generate(n int) error {
	if err := e.store.Generate(n); err != nil {
		return err
	}
	e.rebuildAnnotations()
	return nil
}

// GenerateSeeded is Generate with a deterministic seed.
func (e *Engine) GenerateSeeded(n int, seed uint64) error {
	if err := e.store.GenerateSeeded(n, seed); err != nil {
		return err
	}
	e.rebuildAnnotations()
	return nil
}

// rebuildAnnotations replaces every annotation after a bulk point-set
// change. Initial styling and labels go through a batch so each point
// is formatted exactly once.
func (e *Engine) rebuildAnnotations() {
	e.sel.reset()
	e.projStale = true
	e.screen = e.screen[:0]
	e.index.Clear()

	e.surface.BeginUpdate()
	for _, h := range e.handles {
		e.surface.RemoveAnnotation(h)
	}
	e.handles = e.handles[:0]

	n := e.store.Count()
	e.textDirty = resizeFlags(e.textDirty, n)
	e.styleDirty = resizeFlags(e.styleDirty, n)

	e.BeginBatch()
	for i := 0; i < n; i++ {
		e.handles = append(e.handles, e.surface.AddAnnotation())
		e.textDirty[i] = true
		e.styleDirty[i] = true
	}
	e.EndBatch()
	e.surface.EndUpdate()
}

// AddRandom appends one random point with a fresh annotation and
// returns its index.
func (e *Engine) AddRandom() int {
	i := e.store.AddRandom()
	e.handles = append(e.handles, e.surface.AddAnnotation())
	e.textDirty = append(e.textDirty, false)
	e.styleDirty = append(e.styleDirty, false)
	e.projStale = true

	if e.batchDepth > 0 {
		e.textDirty[i] = true
		e.styleDirty[i] = true
	} else {
		e.surface.SetStyle(e.handles[i], StyleFor(VisualIdle, e.store.points[i].Color))
		e.setText(i)
	}
	e.emit(EventPointAdded, i)
	return i
}

// RemoveAt deletes the point at index i. The sequence compacts, so any
// hover or selection index above i shifts down by one; a slot pointing
// at i empties.
func (e *Engine) RemoveAt(i int) error {
	if i < 0 || i >= e.store.Count() {
		return fmt.Errorf("%w: remove %d of %d", ErrIndexOutOfRange, i, e.store.Count())
	}
	e.emit(EventPointRemoved, i)
	if err := e.store.RemoveAt(i); err != nil {
		return err
	}
	e.surface.RemoveAnnotation(e.handles[i])
	e.handles = append(e.handles[:i], e.handles[i+1:]...)
	e.textDirty = append(e.textDirty[:i], e.textDirty[i+1:]...)
	e.styleDirty = append(e.styleDirty[:i], e.styleDirty[i+1:]...)
	e.sel.pointRemoved(i)
	e.screen = e.screen[:0]
	e.projStale = true
	return nil
}

// RemoveLast deletes the highest-indexed point.
func (e *Engine) RemoveLast() error {
	if e.store.Count() == 0 {
		return fmt.Errorf("%w: remove from empty engine", ErrIndexOutOfRange)
	}
	return e.RemoveAt(e.store.Count() - 1)
}

// RemoveSelected deletes the selected point, or fails with
// ErrInvalidArgument when nothing is selected.
func (e *Engine) RemoveSelected() error {
	if e.sel.selected < 0 {
		return fmt.Errorf("%w: no selection", ErrInvalidArgument)
	}
	return e.RemoveAt(e.sel.selected)
}

// Clear removes every point and annotation.
func (e *Engine) Clear() {
	e.store.Clear()
	e.surface.BeginUpdate()
	for _, h := range e.handles {
		e.surface.RemoveAnnotation(h)
	}
	e.surface.EndUpdate()
	e.handles = e.handles[:0]
	e.textDirty = e.textDirty[:0]
	e.styleDirty = e.styleDirty[:0]
	e.screen = e.screen[:0]
	e.index.Clear()
	e.sel.reset()
	e.projStale = true
}

// --- Batch mode ---

// BeginBatch defers per-point text and style side effects until the
// matching EndBatch, coalescing repeated updates to the same point into
// one flush. Batches nest; only the outermost EndBatch flushes.
func (e *Engine) BeginBatch() {
	e.batchDepth++
}

// EndBatch closes a batch. When the outermost batch closes, all
// deferred updates flush in a single BeginUpdate/EndUpdate scope.
// Unbalanced calls are ignored.
func (e *Engine) EndBatch() {
	if e.batchDepth == 0 {
		return
	}
	e.batchDepth--
	if e.batchDepth == 0 {
		e.flushPending()
	}
}

func (e *Engine) flushPending() {
	e.surface.BeginUpdate()
	for i := range e.textDirty {
		if e.styleDirty[i] {
			e.surface.SetStyle(e.handles[i], StyleFor(e.sel.visualFor(i), e.store.points[i].Color))
			e.styleDirty[i] = false
		}
		if e.textDirty[i] {
			e.setText(i)
			e.textDirty[i] = false
		}
	}
	e.surface.EndUpdate()
}

// --- Camera ---

// SetCamera forces the engine onto a new camera outside the normal
// tick, e.g. during a drag. Screen positions refresh lazily on the
// next pointer event or tick.
func (e *Engine) SetCamera(cam CameraState) error {
	if err := cam.check(); err != nil {
		return err
	}
	e.lastCam = cam
	e.camValid = true
	e.projStale = true
	e.proj.MarkDirty()
	return nil
}

// --- Queries and tuning ---

// Count returns the number of points.
func (e *Engine) Count() int {
	return e.store.Count()
}

// At returns the point at index i.
func (e *Engine) At(i int) (Point, error) {
	return e.store.At(i)
}

// Points returns the live point slice. The returned slice MUST NOT be
// mutated; use the engine's lifecycle methods instead.
func (e *Engine) Points() []Point {
	return e.store.Points()
}

// ScreenPositionAt returns the current projected position of point i,
// refreshing lazily if needed. Fails with ErrInvalidArgument before
// any camera has been observed.
func (e *Engine) ScreenPositionAt(i int) (ScreenPos, error) {
	if i < 0 || i >= e.store.Count() {
		return ScreenPos{}, fmt.Errorf("%w: point %d of %d", ErrIndexOutOfRange, i, e.store.Count())
	}
	if !e.camValid {
		return ScreenPos{}, fmt.Errorf("%w: no camera observed yet", ErrInvalidArgument)
	}
	e.ensureCurrent()
	return e.screen[i], nil
}

// HoveredIndex returns the hovered point index, if any.
func (e *Engine) HoveredIndex() (int, bool) {
	return e.sel.hovered, e.sel.hovered >= 0
}

// SelectedIndex returns the selected point index, if any.
func (e *Engine) SelectedIndex() (int, bool) {
	return e.sel.selected, e.sel.selected >= 0
}

// HasSelection reports whether a point is selected.
func (e *Engine) HasSelection() bool {
	return e.sel.selected >= 0
}

// SetShowAllLabels toggles labels on every point. Enabling reformats
// all n labels immediately and keeps them refreshed each tick — the
// expensive path.
func (e *Engine) SetShowAllLabels(on bool) {
	if on == e.showAll {
		return
	}
	e.showAll = on
	if e.batchDepth > 0 {
		for i := range e.textDirty {
			e.textDirty[i] = true
		}
		return
	}
	e.surface.BeginUpdate()
	for i := range e.handles {
		e.setText(i)
	}
	e.surface.EndUpdate()
}

// SetProximityThreshold tunes the hover/click threshold in pixels.
func (e *Engine) SetProximityThreshold(px float64) error {
	if px <= 0 {
		return fmt.Errorf("%w: proximity threshold %v", ErrInvalidArgument, px)
	}
	e.proximity = px
	return nil
}

// SetEntityStore sets the optional ECS bridge.
func (e *Engine) SetEntityStore(store EntityStore) {
	e.entities = store
}

// resizeFlags returns a flag slice of exactly length n, reusing
// capacity and zeroing retained entries.
func resizeFlags(flags []bool, n int) []bool {
	if cap(flags) < n {
		return make([]bool, n)
	}
	flags = flags[:n]
	for i := range flags {
		flags[i] = false
	}
	return flags
}
