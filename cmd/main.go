package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"github.com/scarlet-lang/scarlet/internal/compiler"
	"github.com/scarlet-lang/scarlet/internal/compiler_errors"
	"github.com/scarlet-lang/scarlet/internal/emitter"
)

var (
	tokensOnly bool
	outputFile string
	verbose    bool
	printAST   bool
	printIR    bool
	emitLLVM   bool
)

var rootCmd = &cobra.Command{
	Use:   "scarlet <file>",
	Short: "Compiler for the Scarlet language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().BoolVarP(&tokensOnly, "tokens", "E", false, "stop after lexing and print the token stream")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write LLVM IR to this file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline stages")
	rootCmd.Flags().BoolVar(&printAST, "print-ast", false, "dump the parsed syntax tree")
	rootCmd.Flags().BoolVar(&printIR, "print-ir", false, "dump the generated block IR")
	rootCmd.Flags().BoolVar(&emitLLVM, "emit-llvm", false, "print LLVM IR to stdout")
}

func run(fileName string) error {
	source, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}

	eh := compiler_errors.NewErrorHandler()
	c := compiler.New(eh, compiler.Options{
		ModuleName: moduleName(fileName),
		Verbose:    verbose,
		Log:        os.Stderr,
	})

	result := c.Compile(source)

	if tokensOnly {
		if !result.LexOK {
			eh.Report(os.Stderr)
			return fmt.Errorf("lexing failed")
		}
		fmt.Print(compiler.FormatTokens(result.Tokens))
		return nil
	}

	if printAST && result.Program != nil {
		litter.Dump(result.Program)
	}

	if !result.OK() {
		eh.Report(os.Stderr)
		return fmt.Errorf("compilation failed")
	}

	if printIR {
		fmt.Print(result.Module.String())
	}

	if emitLLVM || outputFile != "" {
		llvmModule := emitter.NewEmitter(result.Module).Emit()
		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(llvmModule.String()), 0o644); err != nil {
				return err
			}
		}
		if emitLLVM {
			fmt.Print(llvmModule.String())
		}
	}

	return nil
}

func moduleName(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
