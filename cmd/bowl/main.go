// Command bowl runs the Bowl party game in the terminal.
package main

import "github.com/bowl-game/bowl/internal/cli"

func main() {
	cli.Execute()
}
