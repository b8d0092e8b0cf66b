package main

import "daytodo/internal/cli"

func main() {
	cli.Execute()
}
