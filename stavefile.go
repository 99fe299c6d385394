//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]any{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
	"e": Eval.Run,
	"s": Eval.Sweep,
}

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles the seqeval binary with version information.
func Build() error {
	st.Deps(Init)

	// Check if rebuild is needed
	rebuild, err := target.Glob("bin/seqeval", "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Println("seqeval is up to date")
		}
		return nil
	}

	ldflags := buildLdflags()
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", "bin/seqeval", "./cmd/seqeval")
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	date := time.Now().Format(time.RFC3339)

	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		strings.TrimSpace(version),
		strings.TrimSpace(commit),
		date,
	)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	artifacts := []string{
		"bin/",
		"seqeval",
		"coverage.out",
		"coverage.html",
	}
	for _, a := range artifacts {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds and installs the binary to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}

	dst := bin + "/seqeval"
	if runtime.GOOS == "windows" {
		dst += ".exe"
	}
	if err := sh.Copy(dst, "bin/seqeval"); err != nil {
		return fmt.Errorf("installing seqeval: %w", err)
	}
	if st.Verbose() {
		fmt.Printf("Installed seqeval to %s\n", dst)
	}
	return nil
}

// Eval namespace for evaluation targets.
type Eval st.Namespace

// inputs returns the gold and prediction paths from SEQEVAL_TRUE and
// SEQEVAL_PRED, falling back to testdata/true.json and testdata/pred.json.
func inputs() (gold, pred string) {
	gold = os.Getenv("SEQEVAL_TRUE")
	if gold == "" {
		gold = "testdata/true.json"
	}
	pred = os.Getenv("SEQEVAL_PRED")
	if pred == "" {
		pred = "testdata/pred.json"
	}
	return gold, pred
}

// Run evaluates the prediction file against the gold standard.
func (Eval) Run() error {
	st.Deps(Build)

	gold, pred := inputs()
	return sh.RunV("./bin/seqeval", "--true", gold, "--pred", pred)
}

// Sweep compares micro scores across window sizes.
func (Eval) Sweep() error {
	st.Deps(Build)

	gold, pred := inputs()
	return sh.RunV("./bin/seqeval", "sweep",
		"--true", gold,
		"--pred", pred,
		"--min", "5",
		"--max", "100",
		"--step", "5",
	)
}

// Convert turns the CoNLL file named by SEQEVAL_CONLL into JSON token records.
func (Eval) Convert() error {
	in := os.Getenv("SEQEVAL_CONLL")
	if in == "" {
		return fmt.Errorf("SEQEVAL_CONLL not set")
	}
	if _, err := os.Stat(in); os.IsNotExist(err) {
		return fmt.Errorf("conll file not found: %s", in)
	}
	return sh.RunV("go", "run", "./scripts/conll-to-json.go", in)
}

// CI runs vet, lint, test and build in order.
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Vet, Lint, Test, Build)
	return nil
}

// Coverage generates a coverage report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}
