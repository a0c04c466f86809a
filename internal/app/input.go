package app

import (
	"context"
	"os"
	"sync"

	"github.com/eiannone/keyboard"
	"github.com/guidoenr/wallvis/internal/params"
	"golang.org/x/term"
)

type inputEvent struct {
	quit     bool
	property string
}

// shortcuts maps keys onto the property they toggle.
var shortcuts = map[rune]string{
	'v': "showVisualizer",
	't': "showTrackText",
	'c': "showClock",
	's': "showSeconds",
	'f': "timeFormat",
	'g': "glow",
}

// toggleValue returns the host value that flips property name.
func toggleValue(p params.Parameters, name string) any {
	switch name {
	case "showVisualizer":
		return !p.ShowVisualizer
	case "showTrackText":
		return !p.ShowTrackText
	case "showClock":
		return !p.ShowClock
	case "showSeconds":
		return !p.ShowSeconds
	case "glow":
		return !p.Glow
	case "timeFormat":
		if p.TimeFormat == params.Format24Hour {
			return 0.0
		}
		return 1.0
	}
	return nil
}

func (a *App) startInputListener(ctx context.Context) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		a.log.Printf("stdin is not a terminal, keyboard shortcuts disabled")
		return
	}
	if err := keyboard.Open(); err != nil {
		a.log.Printf("keyboard input disabled: %v", err)
		return
	}

	events := make(chan inputEvent, 16)
	a.inputEvents = events

	closeOnce := &sync.Once{}
	go func() {
		<-ctx.Done()
		closeOnce.Do(func() {
			_ = keyboard.Close()
		})
	}()

	go func() {
		defer close(events)
		defer closeOnce.Do(func() {
			_ = keyboard.Close()
		})
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
			if key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || char == 'q' || char == 'Q' {
				events <- inputEvent{quit: true}
				return
			}
			if name, ok := shortcuts[toLower(char)]; ok {
				select {
				case events <- inputEvent{property: name}:
				default:
				}
			}
		}
	}()
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
