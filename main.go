package main

import "github.com/inovacc/starkeep/cmd"

func main() {
	cmd.Execute()
}
