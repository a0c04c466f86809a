// Package app runs the overlay engine on a single goroutine and feeds it
// host events, clock ticks and (optionally) synthetic frames.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/guidoenr/wallvis/internal/clock"
	"github.com/guidoenr/wallvis/internal/config"
	"github.com/guidoenr/wallvis/internal/layout"
	"github.com/guidoenr/wallvis/internal/overlay"
	"github.com/guidoenr/wallvis/internal/render"
)

// ErrStopped is returned by Submit once Run has returned.
var ErrStopped = errors.New("app stopped")

// Config configures the application runtime.
type Config struct {
	Width       int
	Height      int
	TargetFPS   float64
	Demo        bool
	DemoBars    int
	Window      bool
	Keyboard    bool
	ProfilePath string
	Properties  []config.Property
	Log         *log.Logger
	Now         func() time.Time
}

// Snapshot is an immutable view of the engine state published after every
// handled event.
type Snapshot struct {
	Version uint64
	Scene   overlay.Scene
	frame   *image.RGBA
}

// App owns the overlay and serializes every entry point onto Run.
type App struct {
	cfg         Config
	overlay     *overlay.Overlay
	events      chan Event
	done        chan struct{}
	inputEvents chan inputEvent
	fake        *fakeGenerator
	profiler    *profiler
	window      *render.Window
	canvas      *image.RGBA
	last        time.Time
	log         *log.Logger

	mu          sync.RWMutex
	snapshot    Snapshot
	subscribers map[chan overlay.Scene]struct{}
	stopOnce    sync.Once
}

// New constructs the application and applies the startup properties.
func New(cfg Config) (*App, error) {
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = 30
	}
	if cfg.Log == nil {
		cfg.Log = log.New(io.Discard, "", 0)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport: width=%d height=%d", cfg.Width, cfg.Height)
	}
	vp := layout.Viewport{Width: cfg.Width, Height: cfg.Height}.Clamp()
	cfg.Width, cfg.Height = vp.Width, vp.Height

	a := &App{
		cfg: cfg,
		overlay: overlay.New(
			overlay.WithClock(cfg.Now),
			overlay.WithViewport(vp),
		),
		events:      make(chan Event, 64),
		done:        make(chan struct{}),
		log:         cfg.Log,
		subscribers: make(map[chan overlay.Scene]struct{}),
	}

	for _, prop := range cfg.Properties {
		if !a.overlay.ApplyProperty(prop.Name, prop.Value) {
			a.log.Printf("[app] ignoring unknown startup property %q", prop.Name)
		}
	}

	if cfg.Demo {
		a.fake = newFakeGenerator(cfg.DemoBars, cfg.Now().UnixNano())
		a.log.Printf("[app] demo mode, synthetic frames with %d bars", a.fake.bars)
	}
	if cfg.Window {
		window, err := render.OpenWindow("wallvis", cfg.Width, cfg.Height)
		if err != nil {
			return nil, fmt.Errorf("preview window: %w", err)
		}
		a.window = window
		a.canvas = image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	}
	a.profiler = newProfiler(cfg.ProfilePath, a.log)
	a.last = cfg.Now()
	a.publish(false)
	return a, nil
}

// Run processes events until ctx is cancelled or the user quits.
func (a *App) Run(ctx context.Context) error {
	defer a.stop()
	if a.window != nil {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	tick := time.NewTicker(clock.Interval)
	defer tick.Stop()

	var demo <-chan time.Time
	if a.fake != nil {
		frameDuration := time.Duration(float64(time.Second) / a.cfg.TargetFPS)
		ticker := time.NewTicker(frameDuration)
		defer ticker.Stop()
		demo = ticker.C
	}

	inputCtx, cancelInput := context.WithCancel(ctx)
	defer cancelInput()
	if a.cfg.Keyboard {
		a.startInputListener(inputCtx)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt := <-a.events:
			if err := a.handle(evt); err != nil {
				return a.windowErr(err)
			}
		case in, ok := <-a.inputEvents:
			if !ok {
				a.inputEvents = nil
				continue
			}
			if in.quit {
				return nil
			}
			value := toggleValue(a.overlay.Params(), in.property)
			a.log.Printf("[app] shortcut %s -> %v", in.property, value)
			if err := a.handle(PropertyEvent(in.property, value)); err != nil {
				return a.windowErr(err)
			}
		case <-tick.C:
			a.overlay.Tick()
			a.publish(false)
		case <-demo:
			now := a.cfg.Now()
			delta := now.Sub(a.last).Seconds()
			if delta <= 0 {
				delta = 1.0 / a.cfg.TargetFPS
			}
			a.last = now
			if err := a.handle(AudioEvent(a.fake.Next(delta))); err != nil {
				return a.windowErr(err)
			}
		}
	}
}

// Submit queues evt for the engine goroutine, preserving delivery order.
func (a *App) Submit(ctx context.Context, evt Event) error {
	select {
	case <-a.done:
		return ErrStopped
	default:
	}
	select {
	case a.events <- evt:
		return nil
	case <-a.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the latest published state.
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// Scene returns the latest published scene.
func (a *App) Scene() overlay.Scene {
	return a.Snapshot().Scene
}

// FramePNG encodes the last rendered surface.
func (a *App) FramePNG() ([]byte, error) {
	snap := a.Snapshot()
	if snap.frame == nil {
		return nil, errors.New("no frame rendered yet")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, snap.frame); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// Subscribe registers for scene changes. The channel holds only the latest
// scene; cancel releases it.
func (a *App) Subscribe() (<-chan overlay.Scene, func()) {
	ch := make(chan overlay.Scene, 1)
	a.mu.Lock()
	a.subscribers[ch] = struct{}{}
	a.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.subscribers, ch)
			a.mu.Unlock()
		})
	}
}

// Close releases held resources.
func (a *App) Close() error {
	a.stop()
	var errs []error
	if err := a.profiler.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.window != nil {
		if err := a.window.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) stop() {
	a.stopOnce.Do(func() { close(a.done) })
}

func (a *App) handle(evt Event) error {
	a.profiler.begin(evt.Kind.String())
	drew := false
	switch evt.Kind {
	case EventProperty:
		if !a.overlay.ApplyProperty(evt.Name, evt.Value) {
			a.log.Printf("[app] ignoring unknown property %q", evt.Name)
			a.profiler.end()
			return nil
		}
	case EventAudio:
		drew = a.overlay.Render(evt.Frame)
		a.profiler.mark("render")
	case EventTrack:
		a.overlay.SetTrackText(evt.Text)
	case EventResize:
		if !evt.Viewport.Valid() {
			a.log.Printf("[app] ignoring invalid viewport %dx%d", evt.Viewport.Width, evt.Viewport.Height)
			a.profiler.end()
			return nil
		}
		vp := evt.Viewport.Clamp()
		a.overlay.Resize(vp)
		if a.canvas != nil {
			a.canvas = image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
		}
	default:
		a.profiler.end()
		return nil
	}
	a.publish(drew)
	a.profiler.mark("publish")
	err := a.present()
	a.profiler.mark("present")
	a.profiler.end()
	return err
}

// publish swaps in a new snapshot. The surface is copied only when a frame
// was drawn so readers never see a half rendered image.
func (a *App) publish(drew bool) {
	scene := a.overlay.Scene()
	var frame *image.RGBA
	if drew {
		if src := a.overlay.Surface(); src != nil {
			frame = &image.RGBA{
				Pix:    append([]byte(nil), src.Pix...),
				Stride: src.Stride,
				Rect:   src.Rect,
			}
		}
	}

	a.mu.Lock()
	changed := a.snapshot.Version == 0 || scene != a.snapshot.Scene
	a.snapshot.Version++
	a.snapshot.Scene = scene
	if frame != nil {
		a.snapshot.frame = frame
	}
	if changed {
		for ch := range a.subscribers {
			select {
			case <-ch:
			default:
			}
			ch <- scene
		}
	}
	a.mu.Unlock()
}

func (a *App) present() error {
	if a.window == nil {
		return nil
	}
	a.overlay.Preview(a.canvas)
	return a.window.Present(a.canvas)
}

func (a *App) windowErr(err error) error {
	if errors.Is(err, render.ErrWindowClosed) {
		a.log.Printf("[app] preview window closed")
		return nil
	}
	return fmt.Errorf("present frame: %w", err)
}
