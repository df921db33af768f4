// Command linewrap rewrites over-long Python string literals in place, or to
// stdout, so that no line exceeds a configured column width.
package main

import (
	"github.com/linewrap/linewrap/cmd/linewrap/cmd"
)

func main() {
	cmd.Execute()
}
