package main

import "energy-cost-insights/internal/cli"

func main() {
	cli.Execute()
}
