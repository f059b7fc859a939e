package main

import "github.com/rail44/gemrun/cmd"

func main() {
	cmd.Execute()
}
