package main

import "scanpass/cmd/client/cmd"

func main() {
	cmd.Execute()
}
