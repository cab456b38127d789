package main

import "github.com/waypointhq/waypoint/cmd"

func main() {
	cmd.Execute()
}
