package main

import (
	"github.com/masego-dev/clubctl/internal/cli"
)

func main() {
	cli.Execute()
}
