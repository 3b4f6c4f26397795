package main

import "github.com/KaramelBytes/csvtool/cmd"

func main() {
	cmd.Execute()
}
