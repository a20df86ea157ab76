// main.go
package main

import "restaurant-booking/cmd"

func main() {
	cmd.Execute()
}
