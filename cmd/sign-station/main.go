package main

import "github.com/mkropachev/sign-station/cmd/sign-station/cmd"

func main() {
	cmd.Execute()
}
