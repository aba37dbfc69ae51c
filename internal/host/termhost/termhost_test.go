package termhost

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/particlepanic/internal/host"
)

func TestTranslate_Keys(t *testing.T) {
	h := New(nil)
	h.StartTextInput()

	tests := []struct {
		name string
		ev   tcell.Event
		want []host.Event
	}{
		{"resize", tcell.NewEventResize(100, 30), []host.Event{host.Resize(800, 480)}},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), []host.Event{host.Quit()}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), []host.Event{host.Quit()}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), []host.Event{host.KeyPress(host.KeyBackspace)}},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), []host.Event{host.KeyPress(host.KeyUp)}},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), []host.Event{host.KeyPress(host.KeyDown)}},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), []host.Event{host.Text('p')}},
		{"ignored", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := h.translate(tt.ev)
			if len(got) != len(tt.want) {
				t.Fatalf("translate = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTranslate_TextInputOff(t *testing.T) {
	h := New(nil)
	if got := h.translate(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)); len(got) != 0 {
		t.Errorf("text delivered with text input stopped: %+v", got)
	}
}

func TestTranslate_MouseEdges(t *testing.T) {
	h := New(nil)

	got := h.translate(tcell.NewEventMouse(2, 3, tcell.Button1, tcell.ModNone))
	want := []host.Event{host.Motion(20, 56), host.MouseDown(host.ButtonLeft, 20, 56)}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("press = %+v, want %+v", got, want)
	}

	// held while moving: motion only
	got = h.translate(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone))
	if len(got) != 1 || got[0].Type != host.EventMouseMotion {
		t.Fatalf("drag = %+v", got)
	}

	got = h.translate(tcell.NewEventMouse(3, 3, tcell.ButtonNone, tcell.ModNone))
	if len(got) != 1 || got[0] != host.MouseUp(host.ButtonLeft, 28, 56) {
		t.Fatalf("release = %+v", got)
	}

	got = h.translate(tcell.NewEventMouse(3, 3, tcell.Button2, tcell.ModNone))
	if len(got) != 1 || got[0] != host.MouseDown(host.ButtonRight, 28, 56) {
		t.Fatalf("right press = %+v", got)
	}
	if x, y := h.MouseState(); x != 28 || y != 56 {
		t.Errorf("MouseState = %d,%d", x, y)
	}
}

func openSim(t *testing.T) (*Host, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	h := New(nil)
	h.newScreen = func() (tcell.Screen, error) { return sim, nil }
	if err := h.Open("test", 800, 480); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	return h, sim
}

func TestHost_PollAfterOpen(t *testing.T) {
	h, sim := openSim(t)
	defer h.Close()
	h.StartTextInput()

	sim.InjectKey(tcell.KeyRune, 'g', tcell.ModNone)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ev, ok := h.PollEvent(10 * time.Millisecond)
		if ok && ev == host.Text('g') {
			return
		}
	}
	t.Fatal("injected key never arrived")
}

func TestHost_CloseWhilePumping(t *testing.T) {
	h, sim := openSim(t)

	// more events than the channel holds, so the pump is mid-send at Close
	for i := 0; i < cap(h.events)+5; i++ {
		sim.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	}
	time.Sleep(20 * time.Millisecond)

	if err := h.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	select {
	case <-h.pumpDone:
	case <-time.After(2 * time.Second):
		t.Fatal("event pump did not exit")
	}

	if _, ok := h.PollEvent(0); ok {
		t.Error("PollEvent delivered an event after Close")
	}
	if err := h.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
	if err := h.MakeCurrent(); err != host.ErrNotOpen {
		t.Errorf("MakeCurrent after close = %v, want ErrNotOpen", err)
	}
}
