package main

import "github.com/iksnae/support-widget/cmd"

func main() {
	cmd.Execute()
}
