package main

import (
	"context"
	"team-recruit-system/cmd/server"
)

func main() {
	server.Init()
	defer server.Shutdown(context.Background())
	server.Run()
}
