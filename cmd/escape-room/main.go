package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/escape-room/config"
	"github.com/lixenwraith/escape-room/engine"
	"github.com/lixenwraith/escape-room/parameter"
)

var (
	configFlag = flag.String("config", "", "Path to a YAML room config")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
)

func main() {
	flag.Parse()

	if f := setupLogging(*debugFlag); f != nil {
		defer f.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "escape-room: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.RoomConfig, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		log.Printf("config loaded from %s", path)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("after environment overrides: %w", err)
	}
	return cfg, nil
}

// eventSource is the polling half of tcell.Screen
type eventSource interface {
	PollEvent() tcell.Event
}

// pollEvents forwards src into events until src is finalised or done closes
func pollEvents(src eventSource, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := src.PollEvent()
		// nil after Fini
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func run() error {
	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}

	room, err := engine.NewRoom(cfg, engine.WithLogger(log.Default()))
	if err != nil {
		return err
	}
	defer room.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	// Panic recovery: restore the terminal before the stack reaches the user
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mESCAPE-ROOM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	ctl := newControls(room)
	defer ctl.close()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		pollEvents(screen, events, done)
	}()

	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !ctl.handleKey(ev.Key(), ev.Rune()) {
					log.Printf("quit after %d ticks, %d stars", room.Ticks(), room.Stars())
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			room.Tick(now.Sub(last))
			ctl.tick()
			last = now

			screen.Clear()
			renderFrame(screen, room, ctl)
			screen.Show()
		}
	}
}
