package main

import "github.com/architeacher/device-registry/internal/runtime"

func main() {
	runtime.New().Run()
}
