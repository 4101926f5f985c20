package main

import "github.com/octofit/octofit-tracker/cmd"

func main() {
	cmd.Execute()
}
