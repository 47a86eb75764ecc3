package main

import "github.com/pfrederiksen/rlol/internal/cli"

func main() {
	cli.Execute()
}
