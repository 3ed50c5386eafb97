package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/glitter"
	"github.com/gogpu/glitter/text"
)

// Scene is a canvas and the operations drawn onto it, in order.
type Scene struct {
	Width      int     `yaml:"width" toml:"width"`
	Height     int     `yaml:"height" toml:"height"`
	Background string  `yaml:"background,omitempty" toml:"background,omitempty"`
	Output     string  `yaml:"output,omitempty" toml:"output,omitempty"`
	Antialias  string  `yaml:"antialias,omitempty" toml:"antialias,omitempty"`
	Tolerance  float64 `yaml:"tolerance,omitempty" toml:"tolerance,omitempty"`
	Ops        []Op    `yaml:"ops" toml:"ops"`
}

// Op is one drawing operation. Kind is paint, fill, stroke, mask or
// text.
type Op struct {
	Kind     string  `yaml:"kind" toml:"kind"`
	Operator string  `yaml:"operator,omitempty" toml:"operator,omitempty"`
	Color    string  `yaml:"color,omitempty" toml:"color,omitempty"`
	Path     string  `yaml:"path,omitempty" toml:"path,omitempty"`
	FillRule string  `yaml:"fill_rule,omitempty" toml:"fill_rule,omitempty"`
	Alpha    float64 `yaml:"alpha,omitempty" toml:"alpha,omitempty"`
	Width    float64 `yaml:"width,omitempty" toml:"width,omitempty"`
	Cap      string  `yaml:"cap,omitempty" toml:"cap,omitempty"`
	Join     string  `yaml:"join,omitempty" toml:"join,omitempty"`
	Miter    float64 `yaml:"miter_limit,omitempty" toml:"miter_limit,omitempty"`
	Text     string  `yaml:"text,omitempty" toml:"text,omitempty"`
	Size     float64 `yaml:"size,omitempty" toml:"size,omitempty"`
	X        float64 `yaml:"x,omitempty" toml:"x,omitempty"`
	Y        float64 `yaml:"y,omitempty" toml:"y,omitempty"`
	Clip     []Clip  `yaml:"clip,omitempty" toml:"clip,omitempty"`
}

// Clip restricts an operation to a rectangle or to the inside of a path.
type Clip struct {
	Rect     []float64 `yaml:"rect,omitempty" toml:"rect,omitempty"`
	Path     string    `yaml:"path,omitempty" toml:"path,omitempty"`
	FillRule string    `yaml:"fill_rule,omitempty" toml:"fill_rule,omitempty"`
}

var errUnknownFormat = errors.New("unknown scene format")

// LoadScene reads a scene file. The format follows the extension:
// .yaml, .yml or .toml.
func LoadScene(name string) (*Scene, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	sc, err := ParseScene(data, filepath.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if sc.Output == "" {
		sc.Output = strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
	}
	return sc, nil
}

// ParseScene decodes a scene in the format named by ext.
func ParseScene(data []byte, ext string) (*Scene, error) {
	var sc Scene
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &sc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w %q", errUnknownFormat, ext)
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return nil, fmt.Errorf("canvas %dx%d: %w", sc.Width, sc.Height, glitter.ErrInvalidSize)
	}
	return &sc, nil
}

// Options returns the renderer options the scene asks for.
func (sc *Scene) Options() ([]glitter.Option, error) {
	var opts []glitter.Option
	if sc.Antialias != "" {
		aa, err := glitter.ParseAntialias(sc.Antialias)
		if err != nil {
			return nil, err
		}
		opts = append(opts, glitter.WithAntialias(aa))
	}
	if sc.Tolerance > 0 {
		opts = append(opts, glitter.WithTolerance(sc.Tolerance))
	}
	return opts, nil
}

// Render draws the scene with r into a new surface.
func (sc *Scene) Render(r *glitter.Renderer, font *text.Font) (*glitter.Surface, error) {
	s, err := glitter.NewSurface(sc.Width, sc.Height, glitter.FormatARGB32)
	if err != nil {
		return nil, err
	}
	r.SetTarget(s)
	defer r.SetTarget(nil)

	if sc.Background != "" {
		c, err := glitter.ParseHex(sc.Background)
		if err != nil {
			return nil, err
		}
		if err := r.Paint(glitter.OpSource, glitter.SolidPattern(c)); err != nil {
			return nil, err
		}
	}
	for i, op := range sc.Ops {
		if err := op.draw(r, font); err != nil {
			return nil, fmt.Errorf("op %d (%s): %w", i, op.Kind, err)
		}
	}
	return s, nil
}

func (op *Op) draw(r *glitter.Renderer, font *text.Font) error {
	operator := glitter.OpOver
	if op.Operator != "" {
		var err error
		if operator, err = glitter.ParseOperator(op.Operator); err != nil {
			return err
		}
	}
	color := glitter.RGBA(0, 0, 0, 1)
	if op.Color != "" {
		var err error
		if color, err = glitter.ParseHex(op.Color); err != nil {
			return err
		}
	}
	src := glitter.SolidPattern(color)

	depth := 0
	defer func() {
		for range depth {
			r.PopClip()
		}
	}()
	for _, c := range op.Clip {
		if err := c.apply(r); err != nil {
			return err
		}
		depth++
	}

	switch op.Kind {
	case "paint":
		return r.Paint(operator, src)
	case "mask":
		alpha := op.Alpha
		if alpha == 0 {
			alpha = 1
		}
		return r.Mask(operator, src, glitter.SolidPattern(glitter.RGBA(0, 0, 0, alpha)))
	case "fill":
		p, err := ParsePath(op.Path)
		if err != nil {
			return err
		}
		rule, err := fillRule(op.FillRule)
		if err != nil {
			return err
		}
		return r.Fill(operator, src, p, rule)
	case "stroke":
		p, err := ParsePath(op.Path)
		if err != nil {
			return err
		}
		style, err := op.strokeStyle()
		if err != nil {
			return err
		}
		return r.Stroke(operator, src, p, style)
	case "text":
		size := op.Size
		if size == 0 {
			size = 16
		}
		return r.ShowText(operator, src, font, size, op.Text, op.X, op.Y)
	default:
		return fmt.Errorf("unknown op kind %q", op.Kind)
	}
}

var (
	lineCaps = map[string]glitter.LineCap{
		"butt":   glitter.LineCapButt,
		"round":  glitter.LineCapRound,
		"square": glitter.LineCapSquare,
	}
	lineJoins = map[string]glitter.LineJoin{
		"miter": glitter.LineJoinMiter,
		"round": glitter.LineJoinRound,
		"bevel": glitter.LineJoinBevel,
	}
)

func (op *Op) strokeStyle() (glitter.StrokeStyle, error) {
	style := glitter.DefaultStrokeStyle()
	if op.Width > 0 {
		style.Width = op.Width
	}
	if op.Miter > 0 {
		style.MiterLimit = op.Miter
	}
	if op.Cap != "" {
		c, ok := lineCaps[strings.ToLower(op.Cap)]
		if !ok {
			return style, fmt.Errorf("unknown line cap %q", op.Cap)
		}
		style.Cap = c
	}
	if op.Join != "" {
		j, ok := lineJoins[strings.ToLower(op.Join)]
		if !ok {
			return style, fmt.Errorf("unknown line join %q", op.Join)
		}
		style.Join = j
	}
	return style, nil
}

func (c *Clip) apply(r *glitter.Renderer) error {
	switch {
	case len(c.Rect) == 4:
		r.ClipRect(c.Rect[0], c.Rect[1], c.Rect[2], c.Rect[3])
		return nil
	case c.Path != "":
		p, err := ParsePath(c.Path)
		if err != nil {
			return err
		}
		rule, err := fillRule(c.FillRule)
		if err != nil {
			return err
		}
		r.ClipPath(p, rule)
		return nil
	default:
		return errors.New("clip needs a rect of four numbers or a path")
	}
}

func fillRule(name string) (glitter.FillRule, error) {
	if name == "" {
		return glitter.FillRuleNonZero, nil
	}
	return glitter.ParseFillRule(name)
}

// ParsePath parses a path in absolute SVG-like commands: M x y, L x y,
// Q cx cy x y, C c1x c1y c2x c2y x y, Z, and R x y w h for a rectangle.
func ParsePath(s string) (*glitter.Path, error) {
	p := glitter.NewPath()
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	for i := 0; i < len(fields); {
		cmd := strings.ToUpper(fields[i])
		i++
		var n int
		switch cmd {
		case "M", "L":
			n = 2
		case "Q", "R":
			n = 4
		case "C":
			n = 6
		case "Z":
			p.Close()
			continue
		default:
			return nil, fmt.Errorf("path: unknown command %q", fields[i-1])
		}
		if i+n > len(fields) {
			return nil, fmt.Errorf("path: %s needs %d numbers", cmd, n)
		}
		v := make([]float64, n)
		for j := range v {
			f, err := strconv.ParseFloat(fields[i+j], 64)
			if err != nil {
				return nil, fmt.Errorf("path: %w", err)
			}
			v[j] = f
		}
		i += n

		switch cmd {
		case "M":
			p.MoveTo(v[0], v[1])
		case "L":
			p.LineTo(v[0], v[1])
		case "Q":
			p.QuadTo(v[0], v[1], v[2], v[3])
		case "C":
			p.CubicTo(v[0], v[1], v[2], v[3], v[4], v[5])
		case "R":
			p.Rectangle(v[0], v[1], v[2], v[3])
		}
	}
	return p, nil
}
