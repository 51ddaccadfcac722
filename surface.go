package orbit

// AnnotationHandle identifies one annotation owned by a RenderSurface.
// Handles are issued by AddAnnotation and stay valid until
// RemoveAnnotation.
type AnnotationHandle uint32

// AnnotationStyle is the visual treatment of one annotation.
type AnnotationStyle struct {
	Width    float64
	Color    Color
	Bold     bool
	Bordered bool
	Shadowed bool
}

// RenderSurface is the external renderer the engine drives. The engine
// brackets every group of mutations with BeginUpdate/EndUpdate so
// surfaces can suppress intermediate redraws. Implementations must not
// call back into the engine from any of these methods.
type RenderSurface interface {
	AddAnnotation() AnnotationHandle
	RemoveAnnotation(handle AnnotationHandle)
	SetPosition(handle AnnotationHandle, x, y, z float64)
	SetText(handle AnnotationHandle, text string)
	SetStyle(handle AnnotationHandle, style AnnotationStyle)
	BeginUpdate()
	EndUpdate()
}

// StyleFor returns the engine's default styling for a visual state,
// tinted with the point's own color. Selected styling is never equal
// to hovered or idle styling for the same base color.
func StyleFor(state VisualState, base Color) AnnotationStyle {
	switch state {
	case VisualSelected:
		return AnnotationStyle{Width: 3, Color: base, Bold: true, Bordered: true, Shadowed: true}
	case VisualHovered:
		return AnnotationStyle{Width: 2, Color: base, Shadowed: true}
	default:
		return AnnotationStyle{Width: 1, Color: base}
	}
}
