package main

import "github.com/notargets/gonedelec/cmd"

func main() {
	cmd.Execute()
}
