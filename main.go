package main

import "gymlog/cli"

func main() {
	cli.Execute()
}
