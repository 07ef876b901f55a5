package main

import "github.com/handiism/pls/cmd/pls/cmd"

func main() {
	cmd.Execute()
}
