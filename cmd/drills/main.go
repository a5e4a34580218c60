// Command drills runs the ORM exercises from the command line.
package main

import "github.com/mesh-intelligence/ormdrills/internal/cli"

func main() {
	cli.Execute()
}
