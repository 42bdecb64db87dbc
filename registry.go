package pencil

import (
	"slices"
	"sync"
)

// Constructor builds a shape from a definition. It handles the
// type-specific fields and options; position, rotation, scale and children
// are applied by From.
type Constructor func(def Definition) (Shape, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{}
)

func init() {
	for tag, ctor := range map[string]Constructor{
		"Scene":          sceneFromDefinition,
		"Container":      containerFromDefinition,
		"Rectangle":      rectangleFromDefinition,
		"Circle":         circleFromDefinition,
		"Arc":            arcFromDefinition,
		"Line":           lineFromDefinition,
		"Polygon":        polygonFromDefinition,
		"RegularPolygon": regularPolygonFromDefinition,
		"Star":           starFromDefinition,
		"Text":           textFromDefinition,
		"Image":          imageFromDefinition,
		"Sprite":         spriteFromDefinition,
		"Button":         buttonFromDefinition,
		"Select":         selectFromDefinition,
	} {
		Register(tag, ctor)
	}
}

// Register maps a type tag to its constructor, replacing any previous
// registration. Tags are case-sensitive.
func Register(tag string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[tag] = ctor
}

// Registered reports whether tag has a constructor.
func Registered(tag string) bool {
	_, ok := lookup(tag)
	return ok
}

// RegisteredTypes returns every registered tag in sorted order.
func RegisteredTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	tags := make([]string, 0, len(registry))
	for tag := range registry {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

func lookup(tag string) (Constructor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[tag]
	return ctor, ok
}
