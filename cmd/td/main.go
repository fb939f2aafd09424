// ABOUTME: Entrypoint for the td CLI tool.
// ABOUTME: Delegates to td.Execute() from internal/td package.
package main

import (
	"github.com/UmeshaJayakody/taskdep/internal/td"
)

func main() {
	td.Execute()
}
