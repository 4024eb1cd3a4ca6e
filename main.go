package main

import "github.com/darmiel/gatekey/cmd"

func main() {
	cmd.Execute()
}
