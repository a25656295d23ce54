package main

import cmd "github.com/inference-gateway/editor-assistant/cmd"

func main() {
	cmd.Execute()
}
