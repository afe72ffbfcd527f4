// Copyright (c) 2024 cblomart
// Licensed under the MIT License

package main

import (
	"portfolio/cmd"
	"portfolio/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Environment variables win over .env entries
	config.LoadDotEnv()

	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
