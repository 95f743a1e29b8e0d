// Command xcc compiles an ONNX model into an XCVM program and prints
// the resulting instruction listing.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/xcvm-ml/xcc/compiler"
)

// maxOperandChars bounds one operand cell in the listing; longer
// operands, such as large constant payloads, are cut at this length and
// the number of elided characters is appended.
const maxOperandChars = 64

func main() {
	configPath := flag.String("config", "", "YAML file with compiler options")
	compilerLog := flag.Bool("compiler-log", false, "emit diagnostic prints during compilation")
	dumpSubgraphs := flag.Bool("dump-subgraphs", false, "print the subgraph tree before emission")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: xcc [flags] model.onnx")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := compiler.DefaultConfig()
	if *configPath != "" {
		loaded, err := compiler.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *compilerLog {
		cfg.CompilerLog = true
	}
	if *dumpSubgraphs {
		cfg.DumpSubgraphs = true
	}

	prog, err := compiler.CompileFile(flag.Arg(0), cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	printListing(prog)
}

func printListing(prog *compiler.Program) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Op", "Operands", "ID", "Debug"})
	table.SetAutoWrapText(false)
	for i := range prog.Instructions {
		inst := &prog.Instructions[i]
		operands := ""
		for j, op := range inst.Inputs {
			if j > 0 {
				operands += ", "
			}
			operands += elide(op.String())
		}
		table.Append([]string{
			strconv.Itoa(i),
			inst.Op,
			operands,
			strconv.FormatInt(inst.ID, 10),
			inst.DebugInfo,
		})
	}
	table.Render()
}

func elide(s string) string {
	if len(s) <= maxOperandChars {
		return s
	}
	return fmt.Sprintf("%s... *%d chars elided*", s[:maxOperandChars], len(s)-maxOperandChars)
}
