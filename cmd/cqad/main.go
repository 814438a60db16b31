package main

import (
	"log"

	"github.com/NVIDIA/cluster-query-agent/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
