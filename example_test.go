package rydberg_test

import (
	"fmt"

	"rydberg"
)

func Example() {
	s := rydberg.BlockadeSubspace(rydberg.Ring(4))
	fmt.Println(len(s), "configurations")
	for _, c := range s {
		fmt.Printf("%04b\n", c)
	}
	// Output:
	// 7 configurations
	// 0000
	// 0001
	// 0010
	// 0100
	// 0101
	// 1000
	// 1010
}
