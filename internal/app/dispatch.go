package app

import (
	"github.com/san-kum/particlepanic/internal/command"
	"github.com/san-kum/particlepanic/internal/host"
	"github.com/san-kum/particlepanic/internal/world"
)

func (a *App) live() bool { return a.world.SnapshotMode() == world.SnapshotLive }

// Handle applies one host event. Edits are queued; window size, resolution,
// keys and cursor feedback go straight to the world.
func (a *App) Handle(ev host.Event) {
	switch ev.Type {
	case host.EventQuit:
		a.quit = true

	case host.EventResize:
		a.world.ResizeWindow(ev.W, ev.H)
		a.width, a.height = ev.W, ev.H
		a.queue.Push(command.NewResizeWorld(a.world, ev.W, ev.H))

	case host.EventKeyDown:
		switch ev.Key {
		case host.KeyBackspace:
			a.toolbar.RemoveNumber()
		case host.KeyUp:
			a.world.Increase2DResolution()
		case host.KeyDown:
			a.world.Decrease2DResolution()
		}

	case host.EventTextInput:
		a.handleText(ev.Rune)

	case host.EventMouseDown:
		switch ev.Button {
		case host.ButtonLeft:
			onItem := false
			if a.toolbar.DropdownOpen() && a.live() {
				onItem = a.toolbar.HandleClickDropDown(ev.X, ev.Y, a.width, a.height)
			}
			onStrip := a.toolbar.HandleClickDown(ev.X, ev.Y, a.width, a.height)
			a.onToolbar = onStrip || onItem
			a.onWorld = !a.onToolbar
		case host.ButtonRight:
			if a.live() {
				a.rightDown = true
			}
		}

	case host.EventMouseUp:
		switch ev.Button {
		case host.ButtonLeft:
			if a.onWorld {
				a.onWorld = false
				a.selected = false
				if a.toolbar.Drag() && a.live() {
					x, y := a.host.MouseState()
					a.queue.Push(command.NewMouseDragEnd(a.world, x, y))
				}
			} else if a.onToolbar {
				a.toolbar.HandleClickUp()
				a.onToolbar = false
			}
		case host.ButtonRight:
			a.rightDown = false
		}

	case host.EventMouseMotion:
		a.world.MouseMove(ev.X, ev.Y, a.onWorld)
	}
}

func (a *App) handleText(r rune) {
	switch {
	case r >= '0' && r <= '9':
		a.toolbar.AddNumber(r)
	case (r == 'p' || r == 'o') && a.live():
		a.queue.Push(
			command.NewClearWorld(a.world),
			command.NewSet3D(a.world, r == 'p'),
			command.NewResizeWorld(a.world, a.width, a.height),
		)
	case r == '<' || r == '>':
		a.queue.Push(
			command.NewClearWorld(a.world),
			command.NewResizeWorld(a.world, a.width, a.height),
		)
	}

	a.world.HandleKeys(r)
	if a.live() {
		a.toolbar.HandleKeys(r)
	}
}

// Sample turns the held mouse state into edits, once per loop iteration.
// Right-button drawing checks the snapshot mode only at press time.
func (a *App) Sample() {
	if a.world.Is3D() {
		return
	}
	x, y := a.host.MouseState()

	switch {
	case a.onWorld:
		switch {
		case a.toolbar.Drag():
			if !a.selected {
				a.selected = true
				a.queue.Push(
					command.NewSelectDraggedParticles(a.world, x, y),
					command.NewMouseDrag(a.world, x, y),
				)
				return
			}
			a.queue.Push(command.NewMouseDrag(a.world, x, y))
		case a.toolbar.Draw():
			a.queue.Push(command.NewMouseDraw(a.world, x, y))
		case a.toolbar.Erase():
			a.queue.Push(command.NewMouseErase(a.world, x, y))
		}
	case a.rightDown:
		a.queue.Push(command.NewMouseDraw(a.world, x, y))
	}
}
