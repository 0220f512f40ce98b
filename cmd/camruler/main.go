package main

import "github.com/philipparndt/camruler/cmd"

func main() {
	cmd.Execute()
}
