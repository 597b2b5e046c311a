package main

import "github.com/KaramelBytes/nhanes-cli/cmd"

func main() {
	cmd.Execute()
}
