// minilang - Mini-Lang interpreter and pipeline inspector.
//
// Runs or inspects a Mini-Lang source file. Uses manual argument parsing,
// not the stdlib flag package, matching the reference toolchain's driver.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mlang-run/minilang"
	"github.com/mlang-run/minilang/internal/ast"
	"github.com/mlang-run/minilang/internal/lexer"
	"github.com/mlang-run/minilang/internal/parser"
	"github.com/mlang-run/minilang/internal/search"
	"github.com/mlang-run/minilang/internal/semantic"
)

const (
	shortUsage = "usage: minilang [-o PATH] [-r] [--ast] [--tokens] [--symbols] [--grep PATTERN] FILE"
	longUsage  = `Options:
  -o PATH       write emitted target-language source to PATH
  -r            after successful semantic analysis, run the interpreter
  --ast         print the AST in indented-tree form; suppress other output
  --tokens      print the token stream; suppress other output
  --symbols     print the symbol table; suppress other output
  --grep PATTERN  filter --tokens/--ast/--symbols output to matching lines
  -h, --help    show this help message
`
)

func main() {
	var outPath string
	var runFlag, astFlag, tokensFlag, symbolsFlag bool
	var grepPattern string
	var file string

	var i int
	args := os.Args[1:]
	for i = 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-o":
			i++
			if i >= len(args) {
				errorExitf("flag needs an argument: -o")
			}
			outPath = args[i]
		case "-r":
			runFlag = true
		case "--ast":
			astFlag = true
		case "--tokens":
			tokensFlag = true
		case "--symbols":
			symbolsFlag = true
		case "--grep":
			i++
			if i >= len(args) {
				errorExitf("flag needs an argument: --grep")
			}
			grepPattern = args[i]
		case "-h", "--help":
			fmt.Printf("%s\n\n%s", shortUsage, longUsage)
			os.Exit(0)
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				errorExitf("flag provided but not defined: %s", arg)
			}
			if file != "" {
				errorExitf("unexpected argument: %s", arg)
			}
			file = arg
		}
	}

	if file == "" {
		errorExitf(shortUsage)
	}

	srcBytes, err := os.ReadFile(file)
	if err != nil {
		errorExitf("cannot read %s: %v", file, err)
	}
	source := string(srcBytes)

	var matcher *search.Matcher
	if grepPattern != "" {
		matcher, err = search.Compile(grepPattern)
		if err != nil {
			errorExitf("invalid --grep pattern: %v", err)
		}
	}

	if tokensFlag {
		dumpTokens(source, matcher)
		return
	}
	if astFlag {
		dumpAST(source, matcher)
		return
	}
	if symbolsFlag {
		dumpSymbols(source, matcher)
		return
	}

	prog, err := minilang.Compile(source)
	if err != nil {
		errorExit(err)
	}

	if outPath != "" {
		errorExitf("-o: no target-language emitter is bundled with this build")
	}

	if runFlag {
		out, err := prog.Run(&minilang.Config{Stdin: os.Stdin, Stdout: os.Stdout})
		if err != nil {
			errorExit(err)
		}
		fmt.Print(out)
	}
}

func dumpTokens(source string, matcher *search.Matcher) {
	toks, err := lexer.Scan(source)
	if err != nil {
		errorExit(err)
	}
	var sb strings.Builder
	for _, tok := range toks {
		fmt.Fprintf(&sb, "%s %d:%d %q\n", tok.Type, tok.Pos.Line, tok.Pos.Column, tok.Value)
	}
	writeFiltered(sb.String(), matcher)
}

func dumpAST(source string, matcher *search.Matcher) {
	prog, err := parser.Parse(source)
	if err != nil {
		errorExit(err)
	}
	if _, err := semantic.Resolve(prog); err != nil {
		errorExit(err)
	}
	writeFiltered(ast.Dump(prog), matcher)
}

func dumpSymbols(source string, matcher *search.Matcher) {
	prog, err := parser.Parse(source)
	if err != nil {
		errorExit(err)
	}
	result, err := semantic.Resolve(prog)
	if err != nil {
		errorExit(err)
	}
	var sb strings.Builder
	for _, scope := range result.Scopes {
		fmt.Fprintf(&sb, "scope %d:\n", scope.Index())
		for _, name := range scope.Names() {
			sym, _ := scope.LookupLocal(name)
			fmt.Fprintf(&sb, "  %s : %s (slot %d)\n", sym.Name, sym.Type, sym.SlotIndex)
		}
	}
	writeFiltered(sb.String(), matcher)
}

func writeFiltered(text string, matcher *search.Matcher) {
	if matcher == nil {
		fmt.Print(text)
		return
	}
	if err := matcher.FilterLines(os.Stdout, strings.NewReader(text)); err != nil {
		errorExit(err)
	}
}

func errorExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "minilang: "+format+"\n", args...)
	os.Exit(1)
}

func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "minilang: %v\n", err)
	os.Exit(1)
}
