// Package main provides the molsel CLI entrypoint.
package main

import "github.com/molviz-labs/molsel/internal/cli"

func main() {
	cli.Execute()
}
