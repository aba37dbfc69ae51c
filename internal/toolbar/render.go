package toolbar

import (
	"strconv"

	"github.com/san-kum/particlepanic/internal/gfx"
)

const textSize = 10

// Render draws the strip, and the dropdown when open.
func (t *Toolbar) Render(c gfx.Canvas, width, height int) {
	t.mu.Lock()
	mode, open, field, buf := t.mode, t.dropdownOpen, t.field, string(t.buf)
	t.mu.Unlock()

	current := ""
	if v, ok := t.world.Params()[field.Param()]; ok {
		current = strconv.FormatFloat(v, 'f', -1, 64)
	}

	c.Rect(0, 0, width, Height, gfx.ColPanel)

	modes := []struct {
		b    button
		m    Mode
		name string
	}{
		{btnDrag, ModeDrag, "drag"},
		{btnDraw, ModeDraw, "draw"},
		{btnErase, ModeErase, "erase"},
	}
	for _, m := range modes {
		r := rectOf(m.b)
		col := gfx.ColTextDim
		if m.m == mode {
			col = gfx.ColSelect
			c.Rect(r.x, r.y, r.w, r.h, gfx.ColGrid)
		}
		c.RectLines(r.x, r.y, r.w, r.h, col)
		c.Text(m.name, r.x+8, r.y+11, textSize, col)
	}

	fr := rectOf(btnField)
	c.RectLines(fr.x, fr.y, fr.w, fr.h, gfx.ColAccent)
	c.Text(field.String()+" v", fr.x+8, fr.y+11, textSize, gfx.ColText)

	er := rectOf(btnEntry)
	c.RectLines(er.x, er.y, er.w, er.h, gfx.ColAccent)
	if buf == "" {
		c.Text(current, er.x+6, er.y+11, textSize, gfx.ColTextDim)
	} else {
		c.Text(buf, er.x+6, er.y+11, textSize, gfx.ColSelect)
	}

	ar := rectOf(btnApply)
	c.RectLines(ar.x, ar.y, ar.w, ar.h, gfx.ColAccent)
	c.Text("apply", ar.x+8, ar.y+11, textSize, gfx.ColText)

	if !open {
		return
	}
	for i := Field(0); i < numFields; i++ {
		r := itemRect(int(i))
		if r.y+r.h > height {
			break
		}
		col := gfx.ColText
		if i == field {
			col = gfx.ColSelect
		}
		c.Rect(r.x, r.y, r.w, r.h, gfx.ColPanel)
		c.RectLines(r.x, r.y, r.w, r.h, gfx.ColGrid)
		c.Text(i.String(), r.x+8, r.y+9, textSize, col)
	}
}
