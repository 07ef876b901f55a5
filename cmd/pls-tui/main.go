package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/handiism/pls/internal/app"
	"github.com/handiism/pls/internal/config"
)

func main() {
	v := viper.New()
	config.SetDefaults(v)

	a, err := app.New(v, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = a.RunTUI()
	_ = a.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
