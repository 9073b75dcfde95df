// cmd/cnpharness/main.go
package main

import (
	cmd "github.com/pilotbench/cnpharness/internal/commands"
)

// main starts the cnpharness CLI application by delegating to the
// cobra root command defined in the cnpharness package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
