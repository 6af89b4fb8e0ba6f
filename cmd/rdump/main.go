package main

import (
	"flag"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/OhanaFS/rdump/cmd/rdump/cmd"
)

var subcommands = map[string]*flag.FlagSet{
	cmd.DumpCmd.Name():  cmd.DumpCmd,
	cmd.BenchCmd.Name(): cmd.BenchCmd,
}

func run() int {
	var command *flag.FlagSet

	subcommandNames := []string{}
	for name := range subcommands {
		subcommandNames = append(subcommandNames, name)
	}
	sort.Strings(subcommandNames)

	if len(os.Args) < 2 {
		log.Printf("You must specify a subcommand. Valid subcommands are: %s\n", strings.Join(subcommandNames, ", "))
		return 2
	}

	command = subcommands[os.Args[1]]
	if command == nil {
		log.Printf("unknown subcommand '%s'. Available commands are: %s\n", os.Args[1], strings.Join(subcommandNames, ", "))
		return 2
	}

	command.Parse(os.Args[2:])

	switch command.Name() {
	case cmd.DumpCmd.Name():
		return cmd.RunDumpCmd()
	case cmd.BenchCmd.Name():
		return cmd.RunBenchCmd()
	}

	return 0
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("rdump: ")
	os.Exit(run())
}
