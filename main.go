package main

import "github.com/Guy-Maoz/insights-deck-ai/cmd"

func main() {
	cmd.Execute()
}
