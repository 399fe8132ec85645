package configs

import "reflect"

// Configurable is a value type that can be set by a config key, from CUE
// files or from script globals.
type Configurable interface {
	ConfigKey() string
}

var configurableType = reflect.TypeFor[Configurable]()
