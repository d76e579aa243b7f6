package main

import "github.com/agentic-research/lookslice/cmd"

func main() {
	cmd.Execute()
}
