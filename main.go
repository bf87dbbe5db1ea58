package main

import "github.com/naka-gawa/github-streak-stats/cmd"

func main() {
	cmd.Execute()
}
