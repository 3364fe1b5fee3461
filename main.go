package main

import "github.com/atikulmunna/chatlens/internal/cmd"

func main() {
	cmd.Execute()
}
