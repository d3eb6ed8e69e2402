package main

import "camlist-cli/cmd"

func main() {
	cmd.Execute()
}
