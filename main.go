package main

import (
	"net/http"

	"github.com/minepkg/assetguard/cmd"
	"github.com/minepkg/assetguard/internals/globals"
)

// set by goreleaser
var (
	version = "dev"
	commit  string
)

func main() {
	// replace default http client
	http.DefaultClient = globals.HTTPClient

	cmd.Version = version
	cmd.Commit = commit
	cmd.Execute()
}
