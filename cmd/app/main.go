package main

import "github.com/init-pkg/menu-import/internal/bootstrap"

func main() {
	bootstrap.Run()
}
