package main

import "github.com/sambabib/depstale/cmd"

func main() {
	cmd.Execute()
}
