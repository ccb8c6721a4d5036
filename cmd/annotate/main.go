package main

import "github.com/raghuraavi99/annotation-app/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
