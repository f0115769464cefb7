//go:build tools
// +build tools

// Package tools declares Go tool dependencies so `go mod tidy` keeps them in go.sum without
// pulling them into any build.
package tools

import (
	_ "golang.org/x/lint/golint"
	_ "golang.org/x/tools/cmd/stringer"
)
