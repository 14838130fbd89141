package main

import "github.com/KaramelBytes/odpanel/cmd"

func main() {
	cmd.Execute()
}
