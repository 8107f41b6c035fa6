package main

import "github.com/luthersystems/sexpread/cmd"

func main() {
	cmd.Execute()
}
