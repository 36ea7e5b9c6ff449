package main

import "thoreinstein.com/failedjobs/cmd"

func main() {
	cmd.Execute()
}
