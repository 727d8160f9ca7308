package main

import "github.com/notargets/godgfr/cmd"

func main() {
	cmd.Execute()
}
