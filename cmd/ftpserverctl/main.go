package main

import "github.com/marmos91/ftpserver/cmd/ftpserverctl/commands"

var version = "dev"

func main() {
	commands.Version = version
	commands.Execute()
}
