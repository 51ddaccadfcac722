package orbit

import (
	"math/rand/v2"
	"testing"
)

// benchSurface is a no-op RenderSurface so benchmarks measure engine
// cost, not map bookkeeping.
type benchSurface struct {
	next AnnotationHandle
}

func (b *benchSurface) AddAnnotation() AnnotationHandle {
	b.next++
	return b.next
}
func (b *benchSurface) RemoveAnnotation(AnnotationHandle)           {}
func (b *benchSurface) SetPosition(AnnotationHandle, float64, float64, float64) {}
func (b *benchSurface) SetText(AnnotationHandle, string)            {}
func (b *benchSurface) SetStyle(AnnotationHandle, AnnotationStyle)  {}
func (b *benchSurface) BeginUpdate()                                {}
func (b *benchSurface) EndUpdate()                                  {}

func benchEngine(b *testing.B, n int) *Engine {
	b.Helper()
	e := NewEngine(&benchSurface{}, Config{})
	if err := e.GenerateSeeded(n, 42); err != nil {
		b.Fatal(err)
	}
	if err := e.Tick(0, testCam()); err != nil {
		b.Fatal(err)
	}
	return e
}

func BenchmarkAdvance1000(b *testing.B) {
	s := NewPointStore(StoreConfig{})
	if err := s.GenerateSeeded(1000, 42); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Advance(1.0 / 60.0)
	}
}

func BenchmarkProjectPerspective1000(b *testing.B) {
	s := NewPointStore(StoreConfig{})
	if err := s.GenerateSeeded(1000, 42); err != nil {
		b.Fatal(err)
	}
	p := NewPerspective()
	cam := testCam()
	dst := make([]ScreenPos, 0, 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var err error
		dst, err = p.Project(dst[:0], s.Points(), cam)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTick1000(b *testing.B) {
	e := benchEngine(b, 1000)
	cam := testCam()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := e.Tick(1.0/60.0, cam); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPointerMove1000(b *testing.B) {
	e := benchEngine(b, 1000)
	rng := rand.New(rand.NewPCG(1, 1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.HandlePointerMove(rng.Float64()*800, rng.Float64()*600)
	}
}

// BenchmarkNearestIndexed and BenchmarkNearestBrute compare the spatial
// hash candidate walk against scanning every point.
func BenchmarkNearestIndexed(b *testing.B) {
	e := benchEngine(b, 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.nearestWithin(400, 300)
	}
}

func BenchmarkNearestBrute(b *testing.B) {
	e := benchEngine(b, 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		best := -1
		bestD := e.proximity * e.proximity
		for j := range e.screen {
			dx := e.screen[j].X - 400
			dy := e.screen[j].Y - 300
			if d := dx*dx + dy*dy; d <= bestD {
				best, bestD = j, d
			}
		}
		_ = best
	}
}

func BenchmarkIndexRebuild1000(b *testing.B) {
	e := benchEngine(b, 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.index.Clear()
		for j := range e.screen {
			e.index.Insert(j, e.screen[j].X, e.screen[j].Y)
		}
	}
}
