package deck

// Key names understood by HandleKey.
const (
	KeyRight = "right"
	KeyLeft  = "left"
	KeySpace = "space"
	KeyHome  = "home"
	KeyEnd   = "end"
)

// HandleKey applies deck navigation for key and offers any other key to the mounted
// slide when it implements KeyHandler. It reports whether the key was consumed, in which
// case the host must suppress its default behavior (scrolling, for instance) even when
// the navigation itself was a no-op at a boundary.
func (d *Controller) HandleKey(key string) bool {
	switch key {
	case KeyRight, KeySpace, " ":
		d.Next()
	case KeyLeft:
		d.Previous()
	case KeyHome:
		d.First()
	case KeyEnd:
		d.Last()
	default:
		if kh, ok := d.Current().(KeyHandler); ok {
			return kh.HandleKey(key)
		}
		return false
	}
	return true
}
