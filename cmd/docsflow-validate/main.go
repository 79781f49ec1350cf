package main

import "github.com/docsflow/docsflow/cmd/docsflow-validate/cmd"

func main() {
	cmd.Execute()
}
