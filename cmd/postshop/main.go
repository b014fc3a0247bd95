// Package main is the entry point for postshop.
package main

func main() {
	Execute()
}
