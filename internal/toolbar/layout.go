package toolbar

// Height is the strip height in window pixels.
const Height = 40

const itemHeight = 28

type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type button uint8

const (
	btnNone button = iota
	btnDrag
	btnDraw
	btnErase
	btnField
	btnEntry
	btnApply
)

var buttonRects = []struct {
	b button
	r rect
}{
	{btnDrag, rect{4, 4, 64, 32}},
	{btnDraw, rect{72, 4, 64, 32}},
	{btnErase, rect{140, 4, 64, 32}},
	{btnField, rect{216, 4, 128, 32}},
	{btnEntry, rect{352, 4, 80, 32}},
	{btnApply, rect{440, 4, 64, 32}},
}

func buttonAt(x, y int) button {
	for _, br := range buttonRects {
		if br.r.contains(x, y) {
			return br.b
		}
	}
	return btnNone
}

func rectOf(b button) rect {
	for _, br := range buttonRects {
		if br.b == b {
			return br.r
		}
	}
	return rect{}
}

// itemRect is the i-th dropdown entry, stacked under the field button.
func itemRect(i int) rect {
	f := rectOf(btnField)
	return rect{f.x, Height + i*itemHeight, f.w, itemHeight}
}
