package main

import "github.com/quocvuong92/ai-exec/cmd"

func main() {
	cmd.Execute()
}
