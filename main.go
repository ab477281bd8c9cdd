package main

import "github.com/cardwise/utilization-optimizer/cmd"

func main() {
	cmd.Execute()
}
