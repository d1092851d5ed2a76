package main

import "github.com/KaramelBytes/colprofile-cli/cmd"

func main() {
	cmd.Execute()
}
