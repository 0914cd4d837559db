package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Walk WalkCommand `command:"walk" description:"Run the quasi-static walk on the simulated humanoid"`
	Info InfoCommand `command:"info" description:"Show the gait timing and the neutral foot poses"`
	Init InitCommand `command:"init" description:"Write the default configuration file"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "quasiwalk - quasi-static walking demo for a simulated humanoid"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
