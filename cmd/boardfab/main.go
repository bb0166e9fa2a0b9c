package main

import "github.com/dbsmedya/boardfab/cmd/boardfab/cmd"

func main() {
	cmd.Execute()
}
