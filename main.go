package main

import (
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/cmd"
)

func main() {
	cmd.Execute()
}
