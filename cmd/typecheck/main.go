// Command typecheck runs the cases and calls declared in one or more
// scenario YAML files against the type-compatibility engine and reports
// PASS/FAIL for each, colorized when stdout is a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/flowcheck/flowcheck/internal/config"
	"github.com/flowcheck/flowcheck/internal/scenario"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	if len(os.Args) >= 2 && os.Args[1] == "test" {
		config.IsTestMode = true
		os.Exit(runTest(os.Args[2:]))
	}

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <scenario.yaml> [more.yaml ...]\n", os.Args[0])
		os.Exit(1)
	}

	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	exitCode := 0
	for _, path := range os.Args[1:] {
		ok, err := runFile(path, color)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
			continue
		}
		if !ok {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func runFile(path string, color bool) (bool, error) {
	f, err := scenario.LoadFile(path)
	if err != nil {
		return false, err
	}
	report, err := scenario.Run(f)
	if err != nil {
		return false, err
	}
	for _, res := range report.Results {
		fmt.Println(formatResult(path, res, color))
	}
	return report.Passed(), nil
}

func formatResult(path string, res scenario.Result, color bool) string {
	label := "PASS"
	if !res.Passed {
		label = "FAIL"
	}
	if color {
		code := "32" // green
		if !res.Passed {
			code = "31" // red
		}
		label = "\x1b[" + code + "m" + label + "\x1b[0m"
	}
	line := fmt.Sprintf("%s %s: %s", label, path, res.Name)
	if res.Detail != "" {
		line += " (" + res.Detail + ")"
	}
	return line
}

// runTest runs every *.yaml/*.yml scenario file under the given
// directories (or the current directory if none given) and returns a
// process exit code, the way the host's own `test` subcommand does.
func runTest(dirs []string) int {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	allPassed := true
	for _, dir := range dirs {
		files, err := collectScenarioFiles(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", dir, err)
			allPassed = false
			continue
		}
		for _, path := range files {
			ok, err := runFile(path, color)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				allPassed = false
				continue
			}
			if !ok {
				allPassed = false
			}
		}
	}
	if allPassed {
		return 0
	}
	return 1
}

func collectScenarioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, ext := range config.ScenarioFileExtensions {
			if len(e.Name()) > len(ext) && e.Name()[len(e.Name())-len(ext):] == ext {
				out = append(out, dir+"/"+e.Name())
				break
			}
		}
	}
	return out, nil
}
