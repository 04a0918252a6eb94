package main

import "github.com/nprime496/gcp-audio/cmd"

func main() {
	cmd.Execute()
}
