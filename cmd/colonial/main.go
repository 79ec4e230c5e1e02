package main

import "github.com/andrescamacho/colonial-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
