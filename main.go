package main

import "github.com/fulmenhq/ruletune/cmd"

func main() {
	cmd.Execute()
}
