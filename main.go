package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hdsch/blkout/internal"
)

const usage = "Usage: blkout [-s <seconds>] [-e] [-log]\n" +
	"  -s <n>  show the overlay only after n seconds of inactivity\n" +
	"  -e      exit after the overlay is dismissed once\n" +
	"  -log    enable debug logging"

// parseArgs turns the command line into a Config. -s takes whole seconds and
// must be positive; the timeout is carried internally in milliseconds.
func parseArgs(args []string) (internal.Config, bool, error) {
	fs := flag.NewFlagSet("blkout", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	seconds := fs.Int("s", 0, "inactivity timeout in seconds")
	exitOnHide := fs.Bool("e", false, "exit after the first dismissal")
	debugLog := fs.Bool("log", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return internal.Config{}, false, err
	}
	if fs.NArg() > 0 {
		return internal.Config{}, false, fmt.Errorf("unknown argument: %s", fs.Arg(0))
	}

	config := internal.Config{ExitOnHide: *exitOnHide}

	// A default of 0 means -s was not given; an explicit -s 0 is an error.
	sGiven := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "s" {
			sGiven = true
		}
	})
	if sGiven {
		if *seconds <= 0 {
			return internal.Config{}, false, fmt.Errorf("invalid value for -s: %d (want a positive number of seconds)", *seconds)
		}
		config.TimeoutMS = *seconds * 1000
	}

	return config, *debugLog, nil
}

func main() {
	config, debugLog, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "blkout: %v\n%s\n", err, usage)
		os.Exit(1)
	}

	if debugLog {
		internal.InitLogger(internal.LevelDebug, true)
	} else {
		internal.InitLogger(internal.LevelError, false)
	}

	session := internal.NewSession(config)
	if err := session.Connect(); err != nil {
		session.Close()
		fmt.Fprintf(os.Stderr, "blkout: %v\n", err)
		os.Exit(1)
	}

	session.Run()
	session.Close()
}
