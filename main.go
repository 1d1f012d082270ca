package main

import (
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/ZacxDev/go-wiki-site/cmd"
)

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS, where runtime
	// defaults still apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	cmd.Execute()
}
