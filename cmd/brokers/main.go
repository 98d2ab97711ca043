// Команда brokers: консольный поиск брокеров, проводивших показы объектов.
package main

import (
	"fmt"
	"os"

	"brokersearch/cmd/brokers/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}
