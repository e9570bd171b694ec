package main

import "shifremenlanding/cmd"

func main() {
	cmd.Execute()
}
