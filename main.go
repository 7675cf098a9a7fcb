package main

import "github.com/dvidx/focusdial/cmd"

func main() {
	cmd.Execute()
}
