package main

import (
	"fmt"
	"os"

	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/sun-23/go-multiuser/p2p"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %v <path/to/output_dir>\n", os.Args[0])
		os.Exit(1)
	}

	dir := os.Args[1]
	key, err := p2p.EnsureIdentity(dir)
	if err != nil {
		fmt.Printf("failed generating identity: %v\n", err)
		os.Exit(1)
	}

	id, err := peer.IDFromPrivateKey(key)
	if err != nil {
		fmt.Printf("failed deriving peer id: %v\n", err)
		os.Exit(1)
	}

	// Print ID
	fmt.Printf("%s\n", id)
}
