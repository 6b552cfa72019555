package main

import "mangadesk/cmd"

func main() {
	cmd.Execute()
}
