// Package noise generates seeded noise signals.
package noise

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

var ErrUnknownColor = errors.New("unknown noise color")

// Color is the spectral shape of the noise.
type Color int

const (
	White Color = iota
	Pink        // equal energy per octave
	Brown       // leaky-integrated white
)

var colorNames = [...]string{"white", "pink", "brown"}

func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// ParseColor accepts "white", "pink" or "brown"; empty means white.
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return White, nil
	}
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// Generator produces samples in [-1, 1]. The same seed yields the same
// sequence.
type Generator struct {
	color Color
	rand  *rand.Rand

	// Voss-McCartney rows for pink noise
	rows       [16]float32
	runningSum float32
	index      int

	brown float32
}

func New(color Color, seed int64) *Generator {
	g := &Generator{
		color: color,
		rand:  rand.New(rand.NewSource(seed)),
	}
	for i := range g.rows {
		g.rows[i] = g.white()
		g.runningSum += g.rows[i]
	}
	return g
}

func (g *Generator) white() float32 {
	return float32(g.rand.Float64()*2.0 - 1.0)
}

func (g *Generator) pink() float32 {
	g.index = (g.index + 1) & 15
	if g.index != 0 {
		row := 0
		for i := g.index; i&1 == 0; i >>= 1 {
			row++
		}
		g.runningSum -= g.rows[row]
		g.rows[row] = g.white()
		g.runningSum += g.rows[row]
	}
	return clamp((g.runningSum + g.white()) / 17)
}

func (g *Generator) brownian() float32 {
	g.brown = clamp((g.brown + g.white()*0.0625) * 0.997)
	return g.brown
}

// Next returns one sample.
func (g *Generator) Next() float32 {
	switch g.color {
	case Pink:
		return g.pink()
	case Brown:
		return g.brownian()
	default:
		return g.white()
	}
}

// Generate fills buffer with noise.
func (g *Generator) Generate(buffer []float32) {
	for i := range buffer {
		buffer[i] = g.Next()
	}
}

func clamp(x float32) float32 {
	return max(-1, min(1, x))
}
