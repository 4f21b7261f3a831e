package main

import "github.com/mdpkg/mdpkg/cmd"

func main() {
	cmd.Execute()
}
