//go:build !testcoverage

package main

import "os"

func main() {
	if err := run(os.Args[1:], DefaultIO()); err != nil {
		fatal("%v", err)
	}
}
