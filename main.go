package main

import "github.com/chapool/go-hdpay/cmd"

func main() {
	cmd.Execute()
}
