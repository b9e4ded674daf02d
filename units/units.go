// Package units provides constructors, conversion and arithmetic for
// unit-tagged CSS values.
package units

import (
	"fmt"
	"math"

	"github.com/ghostandthemachine/garden/css"
)

// Length units.
func Px(v float64) css.Unit { return css.Unit{Value: v, Unit: "px"} }
func Pt(v float64) css.Unit { return css.Unit{Value: v, Unit: "pt"} }
func Pc(v float64) css.Unit { return css.Unit{Value: v, Unit: "pc"} }
func Cm(v float64) css.Unit { return css.Unit{Value: v, Unit: "cm"} }
func Mm(v float64) css.Unit { return css.Unit{Value: v, Unit: "mm"} }
func Q(v float64) css.Unit  { return css.Unit{Value: v, Unit: "q"} }
func In(v float64) css.Unit { return css.Unit{Value: v, Unit: "in"} }

// Font-relative and viewport-relative length units. Not convertible: their
// size depends on rendering context.
func Em(v float64) css.Unit      { return css.Unit{Value: v, Unit: "em"} }
func Rem(v float64) css.Unit     { return css.Unit{Value: v, Unit: "rem"} }
func Ex(v float64) css.Unit      { return css.Unit{Value: v, Unit: "ex"} }
func Ch(v float64) css.Unit      { return css.Unit{Value: v, Unit: "ch"} }
func Vw(v float64) css.Unit      { return css.Unit{Value: v, Unit: "vw"} }
func Vh(v float64) css.Unit      { return css.Unit{Value: v, Unit: "vh"} }
func Vmin(v float64) css.Unit    { return css.Unit{Value: v, Unit: "vmin"} }
func Vmax(v float64) css.Unit    { return css.Unit{Value: v, Unit: "vmax"} }
func Percent(v float64) css.Unit { return css.Unit{Value: v, Unit: "%"} }

// Angle units.
func Deg(v float64) css.Unit  { return css.Unit{Value: v, Unit: "deg"} }
func Grad(v float64) css.Unit { return css.Unit{Value: v, Unit: "grad"} }
func Rad(v float64) css.Unit  { return css.Unit{Value: v, Unit: "rad"} }
func Turn(v float64) css.Unit { return css.Unit{Value: v, Unit: "turn"} }

// Time units.
func S(v float64) css.Unit  { return css.Unit{Value: v, Unit: "s"} }
func Ms(v float64) css.Unit { return css.Unit{Value: v, Unit: "ms"} }

// Frequency units.
func Hz(v float64) css.Unit  { return css.Unit{Value: v, Unit: "Hz"} }
func KHz(v float64) css.Unit { return css.Unit{Value: v, Unit: "kHz"} }

// Resolution units.
func Dpi(v float64) css.Unit  { return css.Unit{Value: v, Unit: "dpi"} }
func Dpcm(v float64) css.Unit { return css.Unit{Value: v, Unit: "dpcm"} }
func Dppx(v float64) css.Unit { return css.Unit{Value: v, Unit: "dppx"} }

type family int

const (
	familyLength family = iota
	familyAngle
	familyTime
	familyFrequency
	familyResolution
)

// factor describes a convertible unit: its family and the multiplier to
// the family's base unit (px, deg, ms, Hz, dpi).
type factor struct {
	family family
	toBase float64
}

var factors = map[string]factor{
	"px": {familyLength, 1},
	"in": {familyLength, 96},
	"cm": {familyLength, 96 / 2.54},
	"mm": {familyLength, 96 / 25.4},
	"q":  {familyLength, 96 / 101.6},
	"pt": {familyLength, 96.0 / 72},
	"pc": {familyLength, 16},

	"deg":  {familyAngle, 1},
	"grad": {familyAngle, 0.9},
	"rad":  {familyAngle, 180 / math.Pi},
	"turn": {familyAngle, 360},

	"ms": {familyTime, 1},
	"s":  {familyTime, 1000},

	"Hz":  {familyFrequency, 1},
	"kHz": {familyFrequency, 1000},

	"dpi":  {familyResolution, 1},
	"dpcm": {familyResolution, 2.54},
	"dppx": {familyResolution, 96},
}

// Convert converts a unit value to another unit of the same family.
func Convert(u css.Unit, to string) (css.Unit, error) {
	if u.Unit == to {
		return u, nil
	}
	from, ok := factors[u.Unit]
	if !ok {
		return css.Unit{}, fmt.Errorf("units: cannot convert from %q", u.Unit)
	}
	target, ok := factors[to]
	if !ok {
		return css.Unit{}, fmt.Errorf("units: cannot convert to %q", to)
	}
	if from.family != target.family {
		return css.Unit{}, fmt.Errorf("units: cannot convert %q to %q", u.Unit, to)
	}
	return css.Unit{Value: u.Value * from.toBase / target.toBase, Unit: to}, nil
}

// Add sums two unit values, converting the right operand to the unit of the
// left one.
func Add(a, b css.Unit) (css.Unit, error) {
	c, err := Convert(b, a.Unit)
	if err != nil {
		return css.Unit{}, err
	}
	return css.Unit{Value: a.Value + c.Value, Unit: a.Unit}, nil
}

// Sub subtracts the right unit value from the left one, converting the
// right operand to the unit of the left one.
func Sub(a, b css.Unit) (css.Unit, error) {
	c, err := Convert(b, a.Unit)
	if err != nil {
		return css.Unit{}, err
	}
	return css.Unit{Value: a.Value - c.Value, Unit: a.Unit}, nil
}

// Mul scales a unit value by a plain number.
func Mul(u css.Unit, n float64) css.Unit {
	return css.Unit{Value: u.Value * n, Unit: u.Unit}
}

// Div divides a unit value by a plain number.
func Div(u css.Unit, n float64) (css.Unit, error) {
	if n == 0 {
		return css.Unit{}, fmt.Errorf("units: division by zero")
	}
	return css.Unit{Value: u.Value / n, Unit: u.Unit}, nil
}
