// Command quizctl validates authored question files and scores answer files
// offline, without a running server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mind-engage/mindengage-quiz/internal/grading"
	"github.com/mind-engage/mindengage-quiz/internal/question"
	"github.com/mind-engage/mindengage-quiz/internal/validate"
)

const usage = `usage:
  quizctl validate [-json] FILE...
  quizctl score [-json] [-ordering-partial] [-max-edit N] QUIZ_FILE ANSWERS_FILE

Files may be YAML or JSON.`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success, 1 when a question is not
// complete, 2 on usage or input errors.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	switch args[0] {
	case "validate":
		return runValidate(args[1:], stdout, stderr)
	case "score":
		return runScore(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprintln(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s\n", args[0], usage)
		return 2
	}
}

type validateResult struct {
	File     string          `json:"file"`
	Question string          `json:"questionId"`
	Type     question.Type   `json:"questionType"`
	Report   validate.Report `json:"report"`
}

func runValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print reports as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "validate: no files given")
		return 2
	}

	var results []validateResult
	for _, path := range fs.Args() {
		qs, err := loadQuestions(path)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			return 2
		}
		reports := validate.Quiz(qs)
		for _, q := range qs {
			results = append(results, validateResult{File: path, Question: q.ID, Type: q.Type, Report: reports[q.ID]})
		}
	}

	code := 0
	for _, r := range results {
		if !r.Report.OK() {
			code = 1
		}
	}
	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(results)
		return code
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tQUESTION\tTYPE\tSTATUS\tDONE\tPROBLEMS")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d%%\t%s\n",
			r.File, r.Question, r.Type, r.Report.Status, r.Report.CompletionPercentage, problems(r.Report))
	}
	_ = tw.Flush()
	return code
}

func problems(r validate.Report) string {
	var out []string
	for _, e := range r.Errors {
		out = append(out, e.Error())
	}
	for _, f := range r.MissingFields {
		out = append(out, "missing "+f)
	}
	return strings.Join(out, "; ")
}

func runScore(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print the summary as JSON")
	orderingPartial := fs.Bool("ordering-partial", false, "award partial credit on ORDERING questions")
	maxEdit := fs.Int("max-edit", 1, "edit distance for TEXT_INPUT near-miss feedback (0 disables)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "score: want QUIZ_FILE ANSWERS_FILE")
		return 2
	}

	qs, err := loadQuestions(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", fs.Arg(0), err)
		return 2
	}
	answers, err := loadAnswers(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", fs.Arg(1), err)
		return 2
	}

	g := grading.NewDefaultGrader(
		grading.WithOrderingPartialCredit(*orderingPartial),
		grading.WithMaxEditDistance(*maxEdit),
	)
	sum := grading.Score(g, qs, answers)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(sum)
		return 0
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "QUESTION\tCORRECT\tSCORE\tFEEDBACK")
	for _, r := range sum.Results {
		fmt.Fprintf(tw, "%s\t%t\t%g/%g\t%s\n",
			r.QuestionID, r.IsCorrect, r.Score, r.MaxScore, strings.Join(r.Details.Feedback, "; "))
	}
	fmt.Fprintf(tw, "TOTAL\t%d/%d\t%g/%g\t\n", sum.Correct(), len(sum.Results), sum.TotalScore, sum.MaxScore)
	_ = tw.Flush()
	return 0
}
