package main

import (
	linegrep "github.com/linegrep-cli/cmd/linegrep"
)

func main() {
	linegrep.Execute()
}
