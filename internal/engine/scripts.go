package engine

import "fmt"

// ScriptFactory creates a Component from level file props.
type ScriptFactory func(props map[string]any) Component

var scriptRegistry = map[string]ScriptFactory{}

// RegisterScript registers a named script with its factory.
func RegisterScript(name string, factory ScriptFactory) {
	if _, exists := scriptRegistry[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	scriptRegistry[name] = factory
}

// CreateScript looks up a registered script by name and creates it with the given props.
func CreateScript(name string, props map[string]any) Component {
	factory, ok := scriptRegistry[name]
	if !ok {
		return nil
	}
	return factory(props)
}
