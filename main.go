package main

import "github.com/evanmaar/gitpick/cmd"

func main() {
	cmd.Execute()
}
