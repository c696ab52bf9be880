package main

import "bibcleaner/cmd"

func main() {
	cmd.Execute()
}
