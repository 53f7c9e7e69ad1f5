// Package recipe describes creatures in YAML, so that new ones can be made
// without writing any code. A recipe either names one of the built-in
// builders, or spells out a tree of segments.
//
//	name: eel
//	creature:
//	  fAccel: 6
//	segments:
//	  - size: 8
//	    range: 1.5708
//	    repeat: 40
package recipe

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"strings"

	"github.com/adammck/critter"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "recipe",
})

//go:embed recipe.schema.json
var schemaJSON []byte

//go:embed recipes/*.yaml
var builtins embed.FS

var schema = mustCompileSchema()

type Recipe struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Seed for the creature's random source. If nil, it's seeded from the
	// clock, so moves differently every time.
	Seed *int64 `yaml:"seed"`

	Body     critter.BodyMode `yaml:"body"`
	Creature Motion           `yaml:"creature"`

	// Either Builder (with Params), or Segments.
	Builder  string    `yaml:"builder"`
	Params   Params    `yaml:"params"`
	Segments []Segment `yaml:"segments"`
}

// Motion overrides some or all of the motion parameters of the creature.
type Motion struct {
	FAccel  *float64 `yaml:"fAccel"`
	FFric   *float64 `yaml:"fFric"`
	FRes    *float64 `yaml:"fRes"`
	FThresh *float64 `yaml:"fThresh"`
	RAccel  *float64 `yaml:"rAccel"`
	RFric   *float64 `yaml:"rFric"`
	RRes    *float64 `yaml:"rRes"`
	RThresh *float64 `yaml:"rThresh"`
}

func (m Motion) apply(p *critter.Params) {
	for _, x := range []struct {
		src *float64
		dst *float64
	}{
		{m.FAccel, &p.FAccel},
		{m.FFric, &p.FFric},
		{m.FRes, &p.FRes},
		{m.FThresh, &p.FThresh},
		{m.RAccel, &p.RAccel},
		{m.RFric, &p.RFric},
		{m.RRes, &p.RRes},
		{m.RThresh, &p.RThresh},
	} {
		if x.src != nil {
			*x.dst = *x.src
		}
	}
}

// Segment describes a chain of identical segments, and whatever hangs off it.
type Segment struct {
	Size float64 `yaml:"size"`

	// Rest angle of the first link, relative to its parent.
	Angle float64 `yaml:"angle"`

	// Rest angle of every link after the first.
	Bend float64 `yaml:"bend"`

	// Defaults to 2π (unconstrained) and 1 (no pull toward rest).
	Range     *float64 `yaml:"range"`
	Stiffness *float64 `yaml:"stiffness"`

	// Number of links in the chain. Defaults to one.
	Repeat int `yaml:"repeat"`

	// Build two copies of the chain, the first with every angle in it (and
	// under it) negated. This is how bodies get left and right sides.
	Mirror bool `yaml:"mirror"`

	// Hang the children off every link, rather than only the last.
	Each bool `yaml:"each"`

	Children []Segment `yaml:"children"`

	// More chains, which hang off the last link whether or not Each is set.
	// This is how a spine continues past a section with ribs.
	Then []Segment `yaml:"then"`

	// A system to attach to the last link.
	System *System `yaml:"system"`
}

type System struct {
	Kind string `yaml:"kind"`

	// Number of links in the system's chain. Defaults to the repeat count.
	Length int     `yaml:"length"`
	Speed  float64 `yaml:"speed"`
}

func mustCompileSchema() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7

	err := c.AddResource("recipe.schema.json", bytes.NewReader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("error adding recipe schema: %s", err))
	}

	s, err := c.Compile("recipe.schema.json")
	if err != nil {
		panic(fmt.Sprintf("error compiling recipe schema: %s", err))
	}

	return s
}

// Parse validates a YAML recipe and decodes it.
func Parse(b []byte) (*Recipe, error) {
	var doc interface{}
	err := yaml.Unmarshal(b, &doc)
	if err != nil {
		return nil, fmt.Errorf("error parsing recipe: %s: %w", err, critter.ErrInvalidConfig)
	}

	// The schema validator wants the same types that encoding/json produces,
	// so take the long way round.
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error converting recipe: %s: %w", err, critter.ErrInvalidConfig)
	}

	var v interface{}
	err = json.Unmarshal(js, &v)
	if err != nil {
		return nil, fmt.Errorf("error converting recipe: %s: %w", err, critter.ErrInvalidConfig)
	}

	err = schema.Validate(v)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe: %s: %w", err, critter.ErrInvalidConfig)
	}

	r := &Recipe{}
	err = yaml.Unmarshal(b, r)
	if err != nil {
		return nil, fmt.Errorf("error decoding recipe: %s: %w", err, critter.ErrInvalidConfig)
	}

	return r, nil
}

// Load reads a recipe from a file.
func Load(filename string) (*Recipe, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading recipe: %w", err)
	}

	r, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return r, nil
}

// Builtin returns one of the recipes which ship with the package.
func Builtin(name string) (*Recipe, error) {
	b, err := builtins.ReadFile(path.Join("recipes", name+".yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unknown recipe %q: %w", name, critter.ErrInvalidConfig)
		}
		return nil, err
	}

	return Parse(b)
}

// Names returns the names of the built-in recipes, sorted.
func Names() []string {
	entries, err := builtins.ReadDir("recipes")
	if err != nil {
		panic(fmt.Sprintf("error listing built-in recipes: %s", err))
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}

	slices.Sort(names)
	return names
}

// Find returns the built-in recipe with the given name or, if there isn't one,
// loads the recipe file at that path.
func Find(nameOrPath string) (*Recipe, error) {
	if slices.Contains(Names(), nameOrPath) {
		return Builtin(nameOrPath)
	}

	return Load(nameOrPath)
}

// Build creates a new creature from the recipe, with its body at the given
// position, facing along the X axis.
func (r *Recipe) Build(x, y float64) (*critter.Creature, error) {
	var b builder
	if r.Builder != "" {
		var ok bool
		b, ok = builders[r.Builder]
		if !ok {
			return nil, fmt.Errorf("unknown builder %q: %w", r.Builder, critter.ErrInvalidConfig)
		}
	}

	params := r.Params.withDefaults(r.Builder)

	p := defaultMotion
	if b.motion != nil {
		p = b.motion(params)
	}
	r.Creature.apply(&p)
	p.X = x
	p.Y = y

	opts := []critter.Option{}
	if r.Seed != nil {
		opts = append(opts, critter.WithSeed(*r.Seed))
	}
	if r.Body != "" {
		opts = append(opts, critter.WithBodyMode(r.Body))
	}

	c, err := critter.NewCreature(p, opts...)
	if err != nil {
		return nil, fmt.Errorf("recipe %q: %w", r.Name, err)
	}

	if b.build != nil {
		err = b.build(c, params)
	} else {
		err = r.buildSegments(c)
	}
	if err != nil {
		return nil, fmt.Errorf("recipe %q: %w", r.Name, err)
	}

	log.Infof("built %q with %d segments and %d systems", r.Name, len(c.Segments()), len(c.Systems()))
	return c, nil
}

func (r *Recipe) buildSegments(c *critter.Creature) error {
	a := &assembler{c: c}
	for _, s := range r.Segments {
		a.tree(c, s, 1)
	}

	return a.err
}

// tree builds the chain described by s (twice, if it's mirrored) under
// parent, with every angle multiplied by sign.
func (a *assembler) tree(parent critter.Node, s Segment, sign float64) {
	span := 2 * math.Pi
	if s.Range != nil {
		span = *s.Range
	}

	stiffness := 1.0
	if s.Stiffness != nil {
		stiffness = *s.Stiffness
	}

	repeat := s.Repeat
	if repeat < 1 {
		repeat = 1
	}

	signs := []float64{sign}
	if s.Mirror {
		signs = []float64{-sign, sign}
	}

	for _, sg := range signs {
		node := parent
		var end *critter.Segment

		for i := 0; i < repeat; i++ {
			angle := s.Bend
			if i == 0 {
				angle = s.Angle
			}

			end = a.segment(node, s.Size, sg*angle, span, stiffness)
			if a.err != nil {
				return
			}

			if s.Each || i == repeat-1 {
				for _, child := range s.Children {
					a.tree(end, child, sg)
				}
			}

			node = end
		}

		for _, next := range s.Then {
			a.tree(end, next, sg)
		}

		if s.System != nil {
			length := s.System.Length
			if length == 0 {
				length = repeat
			}

			switch s.System.Kind {
			case "leg":
				a.leg(end, length, s.System.Speed)
			default:
				a.limb(end, length, s.System.Speed)
			}
		}
	}
}
