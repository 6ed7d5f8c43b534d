package layout

import (
	"time"

	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
)

// Event names accepted by Header.Apply.
const (
	EventToggle       = "toggle"
	EventOutsideClick = "outside_click"
	EventScroll       = "scroll"
)

// Options configures the header behaviour.
type Options struct {
	ScrollThreshold int
	PreloaderDelay  time.Duration
}

// Header is the state of the site header and navigation menu.
type Header struct {
	MenuOpen bool `json:"menu_open"`
	ScrollY  int  `json:"scroll_y"`
	Scrolled bool `json:"scrolled"`
}

// AriaExpanded is the value of the toggle's aria-expanded attribute.
func (h Header) AriaExpanded() string {
	if h.MenuOpen {
		return "true"
	}
	return "false"
}

// Event is one interaction with the header.
type Event struct {
	Type    string `json:"type" validate:"required,oneof=toggle outside_click scroll"`
	ScrollY int    `json:"scroll_y"`
}

// Controller applies header events.
type Controller struct {
	opts Options
}

func NewController(opts Options) *Controller {
	if opts.ScrollThreshold <= 0 {
		opts.ScrollThreshold = 50
	}
	if opts.PreloaderDelay <= 0 {
		opts.PreloaderDelay = 1500 * time.Millisecond
	}
	return &Controller{opts: opts}
}

// Apply returns the header state after the event. An outside click only
// closes a menu that is open.
func (c *Controller) Apply(h Header, ev Event) (Header, error) {
	switch ev.Type {
	case EventToggle:
		h.MenuOpen = !h.MenuOpen
	case EventOutsideClick:
		if h.MenuOpen {
			h.MenuOpen = false
		}
	case EventScroll:
		h = c.Scroll(h, ev.ScrollY)
	default:
		return h, pkgerrors.New(pkgerrors.CodeValidation, "unknown header event").
			WithDetails(map[string]any{"type": ev.Type})
	}
	return h, nil
}

// Scroll records the scroll offset. The header is scrolled once the offset
// passes the threshold.
func (c *Controller) Scroll(h Header, scrollY int) Header {
	h.ScrollY = scrollY
	h.Scrolled = scrollY > c.opts.ScrollThreshold
	return h
}

// PreloaderVisible reports whether the preloader still covers the page
// loadedAt after page load.
func (c *Controller) PreloaderVisible(loadedAt, now time.Time) bool {
	return now.Sub(loadedAt) < c.opts.PreloaderDelay
}

// PreloaderDelay is the configured time the preloader stays up.
func (c *Controller) PreloaderDelay() time.Duration {
	return c.opts.PreloaderDelay
}
