package main

import "github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/cmd"

func main() {
	cmd.Execute()
}
