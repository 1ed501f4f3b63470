package main

import "github.com/user/vidcut-cli/cmd"

func main() {
	cmd.Execute()
}
