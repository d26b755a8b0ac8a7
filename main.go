// Package main is the entry point for the fixtura CLI.
package main

import "fixtura.dev/pkg/fixtura/cmd"

func main() {
	cmd.Execute()
}
