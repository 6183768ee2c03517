package main

import "facegen-baseline/internal/cli"

func main() {
	cli.Execute()
}
