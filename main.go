package main

import "ccview/cmd"

func main() {
	cmd.Execute()
}
