package main

import "github.com/mytheresa/storefront-catalog/cmd/catalog/commands"

func main() {
	commands.Execute()
}
