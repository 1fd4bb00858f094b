// Package main is the entry point for the graderecorder CLI.
package main

import "graderecorder.dev/pkg/graderecorder/cmd"

func main() {
	cmd.Execute()
}
