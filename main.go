package main

import "github.com/amadeusai/amadeus/cmd"

func main() {
	cmd.Execute()
}
