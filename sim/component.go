package sim

import (
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Component is a element that is being simulated.
type Component interface {
	Named
	Hookable
}

// ComponentBase provides some functions that other component can use.
type ComponentBase struct {
	HookableBase
	sync.Mutex

	name string
}

// NewComponentBase creates a new ComponentBase
func NewComponentBase(name string) *ComponentBase {
	NameMustBeValid(name)

	c := new(ComponentBase)
	c.name = name

	return c
}

// Name returns the name of the BasicComponent
func (c *ComponentBase) Name() string {
	return c.name
}

// NameMustBeValid panics if the name cannot be used to identify a component.
// Names are dot-separated and each segment must be non-empty and free of
// spaces.
func NameMustBeValid(name string) {
	if name == "" {
		log.Panic().Msg("component name cannot be empty")
	}

	for _, token := range strings.Split(name, ".") {
		if token == "" || strings.ContainsAny(token, " \t\n") {
			log.Panic().Msgf("invalid component name %q", name)
		}
	}
}
