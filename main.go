package main

import "swimclub_backend/internals/cli"

func main() {
	cli.Execute()
}
