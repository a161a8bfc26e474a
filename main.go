package main

import "github.com/theirongolddev/moneymoves/cmd"

func main() {
	cmd.Execute()
}
