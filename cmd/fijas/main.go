package main

import "github.com/mcoot/fijas/internal/cli"

func main() {
	cli.Execute()
}
