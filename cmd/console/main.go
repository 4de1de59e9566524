package main

import "github.com/anas-cht/notifications-project/cmd/console/command"

func main() {
	command.Execute()
}
