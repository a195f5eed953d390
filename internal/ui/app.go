package ui

import (
	"context"
	"fmt"

	"mapgame/internal/config"
	"mapgame/internal/debug"
	"mapgame/internal/session"
	"mapgame/internal/worldmap"

	"github.com/gdamore/tcell/v2"
)

const (
	infoWidth      = 48
	infoHeight     = 8
	provinceWidth  = 30
	provinceHeight = 12
)

// App is the main application controller
type App struct {
	screen       tcell.Screen
	world        *worldmap.Collection
	player       *session.Player
	mapView      *MapView
	infoView     *InfoView
	provinceView *ProvinceView
	buttons      tcell.ButtonMask
}

// NewApp creates a new application on the terminal
func NewApp(world *worldmap.Collection, player *session.Player, cfg *config.Config) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	return newApp(screen, world, player, cfg), nil
}

// newApp wires views to an initialized screen
func newApp(screen tcell.Screen, world *worldmap.Collection, player *session.Player, cfg *config.Config) *App {
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.Clear()

	width, height := screen.Size()

	mapView := NewMapView(world, player, width, height, cfg.MinZoom, cfg.MaxZoom)
	infoView := NewInfoView(cfg.MapName, 0, 0, infoWidth, infoHeight)
	provinceView := NewProvinceView(0, height-provinceHeight, provinceWidth, provinceHeight)
	infoView.SetZoom(mapView.Zoom())

	return &App{
		screen:       screen,
		world:        world,
		player:       player,
		mapView:      mapView,
		infoView:     infoView,
		provinceView: provinceView,
	}
}

// Run starts the application main loop. It returns when the user quits
// or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.cleanup()

	go func() {
		<-ctx.Done()
		a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		a.render()

		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !a.handleEvent(ev) {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// render renders all views to the screen
func (a *App) render() {
	a.screen.Clear()

	a.mapView.Draw(a.screen)
	a.infoView.Draw(a.screen)
	a.provinceView.Draw(a.screen)

	a.screen.Show()
}

// handleEvent processes keyboard, mouse and resize events.
// It returns false when the application should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		a.handleMouse(ev)

	case *tcell.EventResize:
		a.handleResize()

	case *tcell.EventInterrupt:
		return false
	}

	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false

	case tcell.KeyTab:
		a.provinceView.SelectNext()
		a.refreshChoice()

	case tcell.KeyBacktab:
		a.provinceView.SelectPrev()
		a.refreshChoice()

	case tcell.KeyUp:
		a.mapView.Pan(0, -1)
	case tcell.KeyDown:
		a.mapView.Pan(0, 1)
	case tcell.KeyLeft:
		a.mapView.Pan(-1, 0)
	case tcell.KeyRight:
		a.mapView.Pan(1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false

		case 'r', 'R':
			a.player.Reset(a.world)
			debug.Log("player choice reset")
			a.refreshChoice()

		case '+', '=':
			a.mapView.ZoomIn()
			a.infoView.SetZoom(a.mapView.Zoom())

		case '-', '_':
			a.mapView.ZoomOut()
			a.infoView.SetZoom(a.mapView.Zoom())
		}
	}

	return true
}

// handleMouse highlights on motion, selects on a Button1 press and zooms
// with the wheel
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	pressed := buttons&^a.buttons
	a.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	switch {
	case buttons&tcell.WheelUp != 0:
		a.mapView.ZoomIn()
		a.infoView.SetZoom(a.mapView.Zoom())
	case buttons&tcell.WheelDown != 0:
		a.mapView.ZoomOut()
		a.infoView.SetZoom(a.mapView.Zoom())
	}

	if pressed&tcell.Button1 != 0 {
		if r, ok := a.mapView.ClickAt(x, y); ok {
			debug.Log("clicked %s %s (%s)", r.Kind(), r.ID(), r.Name())
		}
		a.refreshChoice()
	}

	r, ok := a.mapView.HoverAt(x, y)
	if !ok {
		r = nil
	}
	a.infoView.SetHovered(r)

	pos := a.mapView.LatLonAt(x, y)
	a.infoView.SetPointer(pos.Lat, pos.Lon)
}

// refreshChoice pushes the player's nation and province into the panels
func (a *App) refreshChoice() {
	nationName, provinceName := "", ""

	if nation, ok := a.player.Nation(a.world); ok {
		nationName = nation.Name()
	}

	provinces, ok := a.player.Provinces(a.world)
	if !ok {
		provinces = nil
	}
	a.provinceView.SetProvinces(provinces)
	if selected := a.provinceView.GetSelected(); selected != nil {
		provinceName = selected.Name()
	}

	a.infoView.SetChoice(nationName, provinceName)
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()

	a.mapView.UpdateDimensions(width, height)
	a.infoView.UpdateDimensions(0, 0, infoWidth, infoHeight)
	a.provinceView.UpdateDimensions(0, height-provinceHeight, provinceWidth, provinceHeight)
	debug.Log("screen resized to %dx%d", width, height)
}

// cleanup performs cleanup before exit
func (a *App) cleanup() {
	if a.screen != nil {
		a.screen.Fini()
	}
}
