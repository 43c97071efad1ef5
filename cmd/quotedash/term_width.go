package main

import (
	"os"
	"strconv"
)

func columnsFromEnv() int {
	cols, ok := os.LookupEnv("COLUMNS")
	if !ok {
		return 0
	}
	if n, err := strconv.Atoi(cols); err == nil && n > 0 {
		return n
	}
	return 0
}
