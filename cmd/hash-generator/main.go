// Command hash-generator prints bcrypt hashes for the passwords given as
// arguments, for seeding users rows by hand. With no arguments it prompts for
// one password on the terminal without echo.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/n0secutiry/taskapi/internal/domain"
	"github.com/n0secutiry/taskapi/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// Terminal seams, replaced in tests.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	os.Exit(run(flag.Args(), *cost, int(os.Stdin.Fd()), os.Stdout, os.Stderr))
}

func run(args []string, cost, stdinFd int, out, errOut io.Writer) int {
	passwords := args
	if len(passwords) == 0 {
		if !isTerminal(stdinFd) {
			fmt.Fprintln(errOut, "usage: hash-generator [-cost N] [password...]")
			return 2
		}
		fmt.Fprint(errOut, "Password: ")
		pw, err := readPassword(stdinFd)
		fmt.Fprintln(errOut)
		if err != nil {
			fmt.Fprintf(errOut, "error reading password: %v\n", err)
			return 1
		}
		passwords = []string{string(pw)}
	}

	hasher := auth.NewBcryptHasher(cost)
	failed := false
	for _, password := range passwords {
		if err := domain.ValidatePassword(password); err != nil {
			fmt.Fprintf(errOut, "skipping password: %v\n", err)
			failed = true
			continue
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(errOut, "error generating hash: %v\n", err)
			failed = true
			continue
		}
		fmt.Fprintln(out, hash)
	}
	if failed {
		return 1
	}
	return 0
}
