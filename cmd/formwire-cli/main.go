package main

import "github.com/nfrund/formwire/cmd/formwire-cli/cmd"

func main() {
	cmd.Execute()
}
