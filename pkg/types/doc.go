// Package types defines the store configuration and the standard errors
// shared by the drills store, the exercise packages and the CLI.
package types
