package main

import "github.com/docsflow/docsflow/cmd/docsflow-lint/cmd"

func main() {
	cmd.Execute()
}
