package pencil

import (
	"encoding/json"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// Reserved definition keys. Every other key of a serialized node is a
// type-specific field.
const (
	keyType     = "type"
	keyPosition = "position"
	keyRotation = "rotation"
	keyScale    = "scale"
	keyOptions  = "options"
	keyChildren = "children"
)

// Definition is the plain-data form of a component subtree:
//
//	{"type": "Rectangle", "position": [10, 10], "rotation": 0,
//	 "options": {"fill": "#ff0000"}, "children": [...], "width": 50, ...}
//
// Options holds only the values that differ from the type's defaults.
// Fields holds the type-specific keys, inlined next to the reserved ones
// when encoded.
type Definition struct {
	Type     string
	Position Position
	Rotation float64
	Scale    *Position
	Options  Options
	Children []Definition
	Fields   Options
}

// Definition snapshots c and its subtree.
func (c *Component) Definition() Definition {
	def := Definition{
		Type:     c.TypeName(),
		Position: c.position,
		Rotation: c.rotation,
		Options:  c.options.Diff(c.defaults),
	}
	if c.scale != (Position{1, 1}) {
		s := c.scale
		def.Scale = &s
	}
	if fm, ok := c.variant.(FieldMarshaler); ok {
		def.Fields = fm.MarshalFields()
	}
	for _, child := range c.children {
		def.Children = append(def.Children, child.Definition())
	}
	return def
}

// MarshalJSON encodes c's definition.
func (c *Component) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Definition())
}

// MarshalYAML encodes c's definition.
func (c *Component) MarshalYAML() (any, error) {
	return c.Definition().MarshalYAML()
}

// toMap flattens d into the encoded layout. Keys are sorted by both
// encoders, which keeps output stable.
func (d Definition) toMap() map[string]any {
	m := make(map[string]any, len(d.Fields)+6)
	maps.Copy(m, d.Fields)
	m[keyType] = d.Type
	m[keyPosition] = d.Position
	m[keyRotation] = d.Rotation
	if d.Scale != nil {
		m[keyScale] = *d.Scale
	}
	if len(d.Options) > 0 {
		m[keyOptions] = d.Options
	}
	if len(d.Children) > 0 {
		children := make([]map[string]any, len(d.Children))
		for i, child := range d.Children {
			children[i] = child.toMap()
		}
		m[keyChildren] = children
	}
	return m
}

// MarshalJSON encodes d with its fields inlined.
func (d Definition) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.toMap())
}

// UnmarshalJSON decodes a node and its children.
func (d *Definition) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	def, err := definitionFromMap(raw)
	if err != nil {
		return err
	}
	*d = def
	return nil
}

// MarshalYAML encodes d with its fields inlined.
func (d Definition) MarshalYAML() (any, error) {
	return d.toMap(), nil
}

// UnmarshalYAML decodes a node and its children.
func (d *Definition) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	def, err := definitionFromMap(raw)
	if err != nil {
		return err
	}
	*d = def
	return nil
}

func definitionFromMap(raw map[string]any) (Definition, error) {
	var d Definition
	tag, ok := raw[keyType].(string)
	if !ok {
		return d, fmt.Errorf("pencil: definition without a type")
	}
	d.Type = tag
	if v, ok := raw[keyPosition]; ok {
		p, ok := toPosition(v)
		if !ok {
			return d, &InvalidOptionError{Key: keyPosition, Value: v, Reason: "expected [x, y]"}
		}
		d.Position = p
	}
	if v, ok := raw[keyRotation]; ok {
		r, ok := toFloat(v)
		if !ok {
			return d, &InvalidOptionError{Key: keyRotation, Value: v, Reason: "expected a number"}
		}
		d.Rotation = r
	}
	if v, ok := raw[keyScale]; ok {
		p, ok := toPosition(v)
		if !ok {
			return d, &InvalidOptionError{Key: keyScale, Value: v, Reason: "expected [sx, sy]"}
		}
		d.Scale = &p
	}
	if v, ok := raw[keyOptions]; ok && v != nil {
		m, ok := asMap(v)
		if !ok {
			return d, &InvalidOptionError{Key: keyOptions, Value: v, Reason: "expected a map"}
		}
		d.Options = Options(cloneMap(m))
	}
	if v, ok := raw[keyChildren]; ok && v != nil {
		list, ok := v.([]any)
		if !ok {
			return d, fmt.Errorf("pencil: %s children must be a list", tag)
		}
		for _, item := range list {
			m, ok := asMap(item)
			if !ok {
				return d, fmt.Errorf("pencil: %s child must be a map, got %T", tag, item)
			}
			child, err := definitionFromMap(m)
			if err != nil {
				return d, err
			}
			d.Children = append(d.Children, child)
		}
	}
	for k, v := range raw {
		switch k {
		case keyType, keyPosition, keyRotation, keyScale, keyOptions, keyChildren:
			continue
		}
		if d.Fields == nil {
			d.Fields = Options{}
		}
		d.Fields[k] = v
	}
	return d, nil
}

// checkTypes fails with *UnknownTypeError on the first unregistered tag in
// the tree, so that From never starts building a tree it cannot finish.
func (d Definition) checkTypes() error {
	if !Registered(d.Type) {
		return &UnknownTypeError{Type: d.Type}
	}
	for _, child := range d.Children {
		if err := child.checkTypes(); err != nil {
			return err
		}
	}
	return nil
}

// From builds the subtree described by def. It fails with
// *UnknownTypeError for unregistered tags and *InvalidOptionError for
// values outside their domain; no partial tree is returned on error.
func From(def Definition) (Shape, error) {
	if err := def.checkTypes(); err != nil {
		return nil, err
	}
	return build(def)
}

func build(def Definition) (Shape, error) {
	ctor, ok := lookup(def.Type)
	if !ok {
		return nil, &UnknownTypeError{Type: def.Type}
	}
	if err := def.Options.Validate(); err != nil {
		return nil, err
	}
	if err := def.checkTransform(); err != nil {
		return nil, err
	}
	shape, err := ctor(def)
	if err != nil {
		return nil, err
	}
	c := shape.Base()
	if err := def.applyTransform(c); err != nil {
		return nil, err
	}
	for _, cd := range def.Children {
		child, err := build(cd)
		if err != nil {
			return nil, err
		}
		if err := c.Attach(child); err != nil {
			return nil, err
		}
	}
	return shape, nil
}

func (d Definition) checkTransform() error {
	if !d.Position.IsFinite() {
		return &InvalidOptionError{Key: keyPosition, Value: d.Position, Reason: "not finite"}
	}
	if d.Scale != nil && !d.Scale.IsFinite() {
		return &InvalidOptionError{Key: keyScale, Value: *d.Scale, Reason: "not finite"}
	}
	return nil
}

// applyTransform sets the position, rotation and scale recorded in d.
func (d Definition) applyTransform(c *Component) error {
	c.SetPosition(d.Position)
	if err := c.SetRotation(d.Rotation); err != nil {
		return err
	}
	if d.Scale != nil {
		c.SetScale(*d.Scale)
	}
	return nil
}

// FromJSON decodes and builds a subtree.
func FromJSON(data []byte) (Shape, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("pencil: decode json: %w", err)
	}
	return From(def)
}

// FromYAML decodes and builds a subtree.
func FromYAML(data []byte) (Shape, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("pencil: decode yaml: %w", err)
	}
	return From(def)
}

// SceneFromDefinition builds a runnable scene on surface from a document
// whose root is a Scene node.
func SceneFromDefinition(def Definition, surface Surface, cfg Config, opts ...SceneOption) (*Scene, error) {
	if def.Type != "Scene" {
		return nil, fmt.Errorf("pencil: root must be a Scene, got %q", def.Type)
	}
	if err := def.checkTypes(); err != nil {
		return nil, err
	}
	if err := def.Options.Validate(); err != nil {
		return nil, err
	}
	if err := def.checkTransform(); err != nil {
		return nil, err
	}
	s, err := NewScene(surface, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.SetOptions(def.Options); err != nil {
		return nil, err
	}
	if err := def.applyTransform(s.Component); err != nil {
		return nil, err
	}
	for _, cd := range def.Children {
		child, err := build(cd)
		if err != nil {
			return nil, err
		}
		if err := s.Attach(child); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MarshalFields records the scene size so a document can be rendered
// without a host.
func (s *Scene) MarshalFields() Options {
	sz := s.surface.Size()
	return Options{"width": sz.Width, "height": sz.Height}
}

// sceneFromDefinition renders onto an offscreen raster surface sized from
// the document. Hosts with their own surface use SceneFromDefinition.
func sceneFromDefinition(def Definition) (Shape, error) {
	cfg := DefaultConfig()
	if w := int(fieldFloat(def.Fields, "width", 0)); w > 0 {
		cfg.Width = w
	}
	if h := int(fieldFloat(def.Fields, "height", 0)); h > 0 {
		cfg.Height = h
	}
	s, err := NewScene(NewRasterSurface(cfg.Width, cfg.Height, 1, nil), cfg)
	if err != nil {
		return nil, err
	}
	if err := s.SetOptions(def.Options); err != nil {
		return nil, err
	}
	return s, nil
}

// --- Field helpers ---

func fieldFloat(f Options, key string, fallback float64) float64 {
	if v, ok := toFloat(f[key]); ok && isFinite(v) {
		return v
	}
	return fallback
}

func fieldString(f Options, key, fallback string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return fallback
}

func fieldBool(f Options, key string, fallback bool) bool {
	if v, ok := f[key].(bool); ok {
		return v
	}
	return fallback
}

func fieldPositions(f Options, key string) []Position {
	return toPositions(f[key])
}

// toPositions decodes a list of points.
func toPositions(v any) []Position {
	switch t := v.(type) {
	case []Position:
		return append([]Position(nil), t...)
	case []any:
		out := make([]Position, 0, len(t))
		for _, e := range t {
			if p, ok := toPosition(e); ok {
				out = append(out, p)
			}
		}
		return out
	}
	return nil
}
