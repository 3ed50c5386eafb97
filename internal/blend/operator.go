// Package blend implements the compositing operators: the Porter-Duff
// set, the separable blend modes and the non-separable HSL modes.
//
// Every pixel function works on premultiplied 8-bit values.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import (
	"fmt"
	"strings"

	"github.com/gogpu/glitter/internal/status"
)

// Operator selects how a source is combined with the destination.
type Operator uint8

const (
	OpClear    Operator = iota // 0
	OpSource                   // S
	OpOver                     // S + D*(1-Sa)
	OpIn                       // S*Da
	OpOut                      // S*(1-Da)
	OpAtop                     // S*Da + D*(1-Sa)
	OpDest                     // D
	OpDestOver                 // S*(1-Da) + D
	OpDestIn                   // D*Sa
	OpDestOut                  // D*(1-Sa)
	OpDestAtop                 // S*(1-Da) + D*Sa
	OpXor                      // S*(1-Da) + D*(1-Sa)
	OpAdd                      // min(S + D, 1)
	OpSaturate                 // S*min(1, (1-Da)/Sa) + D

	OpMultiply
	OpScreen
	OpOverlay
	OpDarken
	OpLighten
	OpColorDodge
	OpColorBurn
	OpHardLight
	OpSoftLight
	OpDifference
	OpExclusion
	OpHSLHue
	OpHSLSaturation
	OpHSLColor
	OpHSLLuminosity

	numOperators
)

var operatorNames = [...]string{
	OpClear:         "clear",
	OpSource:        "source",
	OpOver:          "over",
	OpIn:            "in",
	OpOut:           "out",
	OpAtop:          "atop",
	OpDest:          "dest",
	OpDestOver:      "dest-over",
	OpDestIn:        "dest-in",
	OpDestOut:       "dest-out",
	OpDestAtop:      "dest-atop",
	OpXor:           "xor",
	OpAdd:           "add",
	OpSaturate:      "saturate",
	OpMultiply:      "multiply",
	OpScreen:        "screen",
	OpOverlay:       "overlay",
	OpDarken:        "darken",
	OpLighten:       "lighten",
	OpColorDodge:    "color-dodge",
	OpColorBurn:     "color-burn",
	OpHardLight:     "hard-light",
	OpSoftLight:     "soft-light",
	OpDifference:    "difference",
	OpExclusion:     "exclusion",
	OpHSLHue:        "hsl-hue",
	OpHSLSaturation: "hsl-saturation",
	OpHSLColor:      "hsl-color",
	OpHSLLuminosity: "hsl-luminosity",
}

// String returns the operator name.
func (op Operator) String() string {
	if op < numOperators {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", uint8(op))
}

// IsValid reports whether op is a known operator.
func (op Operator) IsValid() bool {
	return op < numOperators
}

// ParseOperator returns the operator with the given name. Underscores
// are accepted in place of dashes and case is ignored.
func ParseOperator(name string) (Operator, error) {
	n := strings.ReplaceAll(strings.ToLower(name), "_", "-")
	for op, s := range operatorNames {
		if s == n {
			return Operator(op), nil
		}
	}
	return 0, fmt.Errorf("blend: unknown operator %q: %w", name, status.ErrInvalidArgument)
}

// BoundedByMask reports whether a zero mask pixel leaves the destination
// unchanged.
func (op Operator) BoundedByMask() bool {
	switch op {
	case OpOut, OpIn, OpDestIn, OpDestAtop:
		return false
	}
	return op.IsValid()
}

// BoundedBySource reports whether a fully transparent source pixel
// leaves the destination unchanged.
func (op Operator) BoundedBySource() bool {
	switch op {
	case OpClear, OpSource, OpOut, OpIn, OpDestIn, OpDestAtop:
		return false
	}
	return op.IsValid()
}

// Bounded reports whether op is bounded by both its mask and source.
func (op Operator) Bounded() bool {
	return op.BoundedByMask() && op.BoundedBySource()
}
