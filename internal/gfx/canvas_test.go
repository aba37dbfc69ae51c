package gfx

import "testing"

func TestSpeed(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want uint8 // red channel
	}{
		{"still", 0, 80},
		{"fast", 1, 255},
		{"below range", -3, 80},
		{"above range", 7, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Speed(tt.in)
			if c.R != tt.want || c.A != 255 {
				t.Errorf("Speed(%v) = %v, want R=%d", tt.in, c, tt.want)
			}
		})
	}

	if Speed(0).B <= Speed(1).B {
		t.Error("slow particles should be bluer than fast ones")
	}
}
