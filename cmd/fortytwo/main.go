// Command fortytwo is a REPL for the 42-points engine, the direct
// descendant of the teacher's main(): read a problem, print solutions,
// loop until the player quits. Unlike the teacher it drives a live
// session.Session instead of a one-shot solve.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/T0nyX1ang/42-Points-Game/internal/config"
	"github.com/T0nyX1ang/42-Points-Game/internal/engineerr"
	"github.com/T0nyX1ang/42-Points-Game/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var target int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "fortytwo",
		Short: "Play the 42 points arithmetic puzzle from a terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
			return runREPL(target)
		},
	}
	cmd.Flags().IntVar(&target, "target", 42, "the value every submission must evaluate to")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log engine internals")
	return cmd
}

func runREPL(target int) error {
	sess := session.New(target, session.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))))
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("Enter five numbers (0-%d) separated by spaces, or 'quit':\n", config.Default().MaxLiteral)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "quit" || line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		numbers, err := parseNumbers(line)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}

		if err := sess.GenerateProblem(session.ExplicitRequest(numbers)); err != nil {
			printEngineErr(err)
			continue
		}
		if err := sess.Start(); err != nil {
			printEngineErr(err)
			continue
		}

		total, _ := sess.TotalSolutionCount()
		fmt.Printf("%d distinct solutions exist. Enter one per line, 'list' to see a remaining solution, 'stop' to give up:\n", total)
		playLoop(reader, sess)
	}
}

func playLoop(reader *bufio.Reader, sess *session.Session) {
	for sess.IsPlaying() {
		fmt.Print(">> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			sess.Stop()
			return
		}
		line = strings.TrimSpace(line)
		switch line {
		case "stop":
			elapsed, _ := sess.Stop()
			fmt.Printf("stopped after %s\n", elapsed)
			return
		case "list":
			remaining, _ := sess.RemainingSolutions()
			if len(remaining) == 0 {
				fmt.Println("no remaining solutions")
				continue
			}
			fmt.Println(remaining[0])
			continue
		case "":
			continue
		}

		interval, err := sess.Solve(line, 0)
		if err != nil {
			printEngineErr(err)
			continue
		}
		found, _ := sess.CurrentSolutionCount()
		total, _ := sess.TotalSolutionCount()
		fmt.Printf("accepted (%s) — %d/%d found\n", interval, found, total)
		if found == total {
			elapsed, _ := sess.Stop()
			fmt.Printf("all solutions found in %s\n", elapsed)
			return
		}
	}
}

func parseNumbers(line string) ([]int, error) {
	fields := strings.Fields(line)
	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", f)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

func printEngineErr(err error) {
	if ee, ok := err.(*engineerr.Err); ok {
		fmt.Println("rejected:", ee.Error())
		return
	}
	fmt.Println("error:", err)
}
