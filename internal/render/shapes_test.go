package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var opaqueRed = color.NRGBA{R: 255, A: 255}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(40, 1)
	c.FillCircle(20, 20, 10, opaqueRed)

	assert.Equal(t, color.RGBA{R: 255, A: 255}, c.At(20, 20))
	assert.Equal(t, color.RGBA{}, c.At(2, 2))
	assert.Equal(t, color.RGBA{}, c.At(20, 35))
}

func TestFillCircle_DeviceScale(t *testing.T) {
	c := NewCanvas(80, 2)
	c.FillCircle(20, 20, 10, opaqueRed)

	assert.Greater(t, c.At(40, 40).R, uint8(200), "logical centre lands at device 40,40")
	assert.Greater(t, c.At(40, 25).R, uint8(200))
	assert.Zero(t, c.At(40, 15).A)
}

func TestStrokeCircle_LeavesHole(t *testing.T) {
	c := NewCanvas(60, 1)
	c.StrokeCircle(30, 30, 20, 2, opaqueRed)

	assert.Zero(t, c.At(30, 30).A, "centre stays empty")
	assert.Greater(t, c.At(50, 30).R, uint8(200))
	assert.Greater(t, c.At(30, 10).R, uint8(200))
}

func TestDashedCircle_HasGaps(t *testing.T) {
	c := NewCanvas(100, 1)
	c.DashedCircle(50, 50, 40, 2, 8, 8, opaqueRed)

	lit, total := 0, 0
	for a := 0.0; a < 2*math.Pi; a += 0.01 {
		total++
		if c.At(int(50+40*math.Cos(a)), int(50+40*math.Sin(a))).A > 128 {
			lit++
		}
	}
	assert.InDelta(t, 0.5, float64(lit)/float64(total), 0.2)
	assert.Zero(t, c.At(50, 50).A)
}

func TestRoundRect(t *testing.T) {
	c := NewCanvas(50, 1)
	c.FillRoundRect(5, 5, 40, 30, 8, opaqueRed)

	assert.Greater(t, c.At(25, 20).R, uint8(200))
	assert.Zero(t, c.At(5, 5).A, "corner is rounded off")
	assert.Zero(t, c.At(25, 40).A)

	o := NewCanvas(50, 1)
	o.StrokeRoundRect(5, 5, 40, 30, 8, 2, opaqueRed)
	assert.Zero(t, o.At(25, 20).A, "outline only")
	assert.Greater(t, o.At(25, 5).R, uint8(200))
}

func TestShapesClipToCanvas(t *testing.T) {
	c := NewCanvas(20, 1)
	assert.NotPanics(t, func() {
		c.FillCircle(-100, -100, 30, opaqueRed)
		c.FillCircle(10, 10, 1000, opaqueRed)
		c.Line(-50, 10, 70, 10, 3, opaqueRed)
		c.DashedLine(10, -40, 10, 60, 1, 2, 4, opaqueRed)
		c.Spikes(19, 19, 40, 2, opaqueRed)
		c.Glow(0, 0, 100, Stop{At: 0, Color: opaqueRed})
		c.Text(-30, -5, "clipped", opaqueRed, AlignLeft)
		c.Text(15, 18, "clipped", opaqueRed, AlignRight)
	})
	assert.Greater(t, c.At(10, 10).R, uint8(200))

	empty := NewCanvas(0, 1)
	assert.NotPanics(t, func() { empty.FillCircle(0, 0, 5, opaqueRed) })
}

func TestGlowFadesOut(t *testing.T) {
	c := NewCanvas(60, 1)
	c.Glow(30, 30, 25, glowStops(color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 0.9)...)

	centre, mid, rim := c.At(30, 30).A, c.At(42, 30).A, c.At(54, 30).A
	assert.Greater(t, centre, mid)
	assert.Greater(t, mid, rim)
	assert.InDelta(t, 0x80, int(centre), 6)
	assert.Zero(t, c.At(58, 30).A)
}

func TestGradientAt(t *testing.T) {
	stops := []Stop{
		{At: 0, Color: color.NRGBA{A: 200}},
		{At: 0.5, Color: color.NRGBA{A: 100}},
		{At: 1, Color: color.NRGBA{A: 0}},
	}
	tests := []struct {
		t    float64
		want uint8
	}{
		{-1, 200},
		{0, 200},
		{0.25, 150},
		{0.5, 100},
		{0.75, 50},
		{1, 0},
		{3, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gradientAt(stops, tt.t).A, "t=%v", tt.t)
	}
}
