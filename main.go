package main

import (
	_ "embed"

	"github.com/jollymugivara/transaction-revision-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
