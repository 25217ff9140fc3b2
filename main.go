/*
	Copyright 2023 Markus Papenbrock
*/

package main

import "github.com/mpapenbr/acc-hotlap-merger-go/cmd"

func main() {
	cmd.Execute()
}
