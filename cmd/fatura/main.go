package main

import "github.com/nfrund/fatura/cmd/fatura/cmd"

func main() {
	cmd.Execute()
}
