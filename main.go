package main

import "github.com/Tiliavir/wellness-logger/cmd"

func main() {
	cmd.Execute()
}
