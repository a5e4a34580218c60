// Package drills lists every exercise the CLI knows about, in course
// order.
package drills

import (
	"github.com/mesh-intelligence/ormdrills/internal/basics"
	"github.com/mesh-intelligence/ormdrills/internal/bookstore"
	"github.com/mesh-intelligence/ormdrills/internal/catalog"
	"github.com/mesh-intelligence/ormdrills/internal/cinema"
	"github.com/mesh-intelligence/ormdrills/internal/dataops"
	"github.com/mesh-intelligence/ormdrills/internal/dragons"
	"github.com/mesh-intelligence/ormdrills/internal/exercise"
	"github.com/mesh-intelligence/ormdrills/internal/games"
	"github.com/mesh-intelligence/ormdrills/internal/guild"
	"github.com/mesh-intelligence/ormdrills/internal/hotel"
	"github.com/mesh-intelligence/ormdrills/internal/inventory"
	"github.com/mesh-intelligence/ormdrills/internal/restaurants"
	"github.com/mesh-intelligence/ormdrills/internal/shop"
	"github.com/mesh-intelligence/ormdrills/internal/students"
	"github.com/mesh-intelligence/ormdrills/internal/zoo"
)

// All returns a fresh slice of every registered exercise.
func All() []exercise.Exercise {
	return []exercise.Exercise{
		basics.Exercise(),
		students.Exercise(),
		dataops.Exercise(),
		inventory.Exercise(),
		zoo.Exercise(),
		guild.Exercise(),
		hotel.Exercise(),
		restaurants.Exercise(),
		catalog.Exercise(),
		games.Exercise(),
		bookstore.Exercise(),
		shop.Exercise(),
		cinema.Exercise(),
		dragons.Exercise(),
	}
}

// Find returns the registered exercise called name.
func Find(name string) (exercise.Exercise, error) {
	return exercise.Find(All(), name)
}

// Names returns the exercise names in registration order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, e := range all {
		names[i] = e.Name
	}
	return names
}
