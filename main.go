package main

import "github.com/gaurav-prasanna/pageconv/cmd"

func main() {
	cmd.Execute()
}
