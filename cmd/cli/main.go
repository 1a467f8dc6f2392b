package main

import "sqe/cmd/cli/app/cmd"

func main() {
	cmd.Execute()
}
