// Command daybook is a local habit, mood, and sleep tracker.
package main

import "github.com/quietgrove/daybook/internal/cli"

func main() {
	cli.Execute()
}
