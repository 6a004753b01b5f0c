// Package scene implements the 2D scene surface the game is drawn on.
//
// The scene is an explicit spatial registry: every visual object has an id,
// a center position, the image it shows and a place in the stacking order.
// Components move objects and query bounding boxes and overlaps directly
// against this registry. Timers are delegated to the game loop so the scene
// can cut off every pending callback when it is destroyed.
package scene

import (
	"errors"
	"image"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-lite/internal/core"
	"github.com/vovakirdan/flappy-lite/internal/loop"
)

// ErrDestroyed is reported when timers are requested on a destroyed scene.
var ErrDestroyed = errors.New("scene: surface destroyed")

// ID identifies an object on the scene. Zero is never a valid id.
type ID int

// Image is anything the scene can display. *image.RGBA satisfies it.
type Image interface {
	Bounds() image.Rectangle
	RGBAAt(x, y int) color.RGBA
}

type object struct {
	x, y float64 // center
	w, h float64
	img  Image
}

func (o *object) bbox() core.Rect {
	return core.RectFromCenter(o.x, o.y, o.w, o.h)
}

// Scene holds the objects currently on the surface.
type Scene struct {
	loop      *loop.Loop
	logger    *log.Logger
	objects   map[ID]*object
	order     []ID // bottom to top
	nextID    ID
	destroyed bool
}

// New creates an empty scene whose timers run on lp.
// A nil logger discards output.
func New(lp *loop.Loop, logger *log.Logger) *Scene {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scene{
		loop:    lp,
		logger:  logger,
		objects: make(map[ID]*object),
	}
}

// CreateImage places img with its center at (x, y) on top of every other
// object and returns its id.
func (s *Scene) CreateImage(x, y float64, img Image) ID {
	s.nextID++
	id := s.nextID

	b := img.Bounds()
	s.objects[id] = &object{
		x:   x,
		y:   y,
		w:   float64(b.Dx()),
		h:   float64(b.Dy()),
		img: img,
	}
	s.order = append(s.order, id)
	return id
}

// Move displaces an object. Unknown ids are ignored.
func (s *Scene) Move(id ID, dx, dy float64) {
	if o, ok := s.objects[id]; ok {
		o.x += dx
		o.y += dy
	}
}

// Delete removes an object. Unknown ids are ignored.
func (s *Scene) Delete(id ID) {
	if _, ok := s.objects[id]; !ok {
		return
	}
	delete(s.objects, id)
	s.removeFromOrder(id)
}

// DeleteAll removes every object.
func (s *Scene) DeleteAll() {
	clear(s.objects)
	s.order = s.order[:0]
}

// BBox returns the bounding box of an object, or false if the id is unknown.
func (s *Scene) BBox(id ID) (core.Rect, bool) {
	o, ok := s.objects[id]
	if !ok {
		return core.Rect{}, false
	}
	return o.bbox(), true
}

// Exists reports whether the id is on the scene.
func (s *Scene) Exists(id ID) bool {
	_, ok := s.objects[id]
	return ok
}

// FindOverlapping returns the ids of all objects whose bounding box touches
// r, in stacking order from bottom to top.
func (s *Scene) FindOverlapping(r core.Rect) []ID {
	var ids []ID
	for _, id := range s.order {
		if s.objects[id].bbox().Overlaps(r) {
			ids = append(ids, id)
		}
	}
	return ids
}

// LowerToBack moves an object below every other object.
func (s *Scene) LowerToBack(id ID) {
	if _, ok := s.objects[id]; !ok {
		return
	}
	s.removeFromOrder(id)
	s.order = append(s.order, 0)
	copy(s.order[1:], s.order)
	s.order[0] = id
}

// Len returns the number of objects on the scene.
func (s *Scene) Len() int {
	return len(s.objects)
}

// ColorAt returns the color of the topmost opaque pixel at world point (x, y).
func (s *Scene) ColorAt(x, y float64) (color.RGBA, bool) {
	for i := len(s.order) - 1; i >= 0; i-- {
		o := s.objects[s.order[i]]
		box := o.bbox()
		if !box.Contains(x, y) {
			continue
		}
		b := o.img.Bounds()
		px := b.Min.X + core.Clamp(int(x-box.X1), 0, b.Dx()-1)
		py := b.Min.Y + core.Clamp(int(y-box.Y1), 0, b.Dy()-1)
		c := o.img.RGBAAt(px, py)
		if c.A >= 128 {
			return c, true
		}
	}
	return color.RGBA{}, false
}

// After schedules fn once after delay. Returns nil once the scene is destroyed.
func (s *Scene) After(delay time.Duration, fn func()) *loop.Handle {
	if s.destroyed {
		s.logger.Debug("timer dropped", "err", ErrDestroyed)
		return nil
	}
	return s.loop.After(delay, func() {
		if s.destroyed {
			return
		}
		fn()
	})
}

// Every schedules a periodic task. The task chain ends silently if the
// scene is destroyed while it is pending.
func (s *Scene) Every(period time.Duration, task loop.Task) *loop.Handle {
	if s.destroyed {
		s.logger.Debug("timer dropped", "err", ErrDestroyed)
		return nil
	}
	return s.loop.Every(period, func() bool {
		if s.destroyed {
			s.logger.Debug("task chain ended", "err", ErrDestroyed)
			return false
		}
		return task()
	})
}

// Destroy removes every object and stops honoring timers.
func (s *Scene) Destroy() {
	s.destroyed = true
	s.DeleteAll()
}

// Destroyed reports whether Destroy was called.
func (s *Scene) Destroyed() bool {
	return s.destroyed
}

func (s *Scene) removeFromOrder(id ID) {
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
