package main

import "pkgshift/internal/cli"

func main() {
	cli.Execute()
}
