package main

import "github.com/docsflow/docsflow/cmd/docsflow-deploy/cmd"

func main() {
	cmd.Execute()
}
