// Package types holds the interfaces shared across locfold packages.
package types
