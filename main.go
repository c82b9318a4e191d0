package main

import "github.com/startuplens/entres/cmd"

func main() {
	cmd.Execute()
}
