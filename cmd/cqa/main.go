package main

import (
	"github.com/NVIDIA/cluster-query-agent/pkg/cli"
)

func main() {
	cli.Execute()
}
