package main

import "github.com/nemogoc/pickup/internal/cli"

func main() {
	cli.Execute()
}
