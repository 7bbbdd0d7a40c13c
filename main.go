package main

import "github.com/mabhi256/jarscope/cmd"

func main() {
	cmd.Execute()
}
