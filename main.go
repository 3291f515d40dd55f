// Package main is the entry point for the mcstats CLI tool, which reads
// Minecraft server statistics over SFTP and renders a static HTML report.
package main

import "github.com/statsmc/mcstats/cmd"

func main() {
	cmd.Execute()
}
