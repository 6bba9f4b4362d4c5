package main

import "github.com/StinkyLord/food-normalizer/cmd"

func main() {
	cmd.Execute()
}
