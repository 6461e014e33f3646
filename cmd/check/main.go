package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/optilab/stsbench/pkg/schedule"
	"github.com/samber/lo"
)

// record is the loosely-typed view of one persisted benchmark entry. Only
// the fields the checker needs are decoded; sol stays untyped because its
// shape is exactly what is being judged.
type record struct {
	Sol         any      `mapstructure:"sol"`
	Solver      string   `mapstructure:"solver"`
	Constraints []string `mapstructure:"constraints"`
}

type entryReport struct {
	Name   string
	Solver string
	Report schedule.Report
}

type fileSummary struct {
	Path    string
	Entries []entryReport
}

func (s fileSummary) count(verdict schedule.Verdict) int {
	return lo.CountBy(s.Entries, func(e entryReport) bool { return e.Report.Verdict == verdict })
}

func main() {
	dirPtr := flag.String("dir", "res", "Directory holding one JSON results document per instance size")
	verbosePtr := flag.Bool("v", false, "Print every entry, not only the invalid ones")
	flag.Parse()
	if flag.NArg() > 0 {
		*dirPtr = flag.Arg(0)
	}

	files, err := os.ReadDir(*dirPtr)
	if err != nil {
		log.Fatalf("cannot read results directory: %v", err)
	}

	invalid := 0
	checked := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		summary, err := checkFile(filepath.Join(*dirPtr, file.Name()))
		if err != nil {
			log.Fatalf("cannot check %v: %v", file.Name(), err)
		}
		checked++

		for _, entry := range summary.Entries {
			if entry.Report.Verdict == schedule.Valid && !*verbosePtr {
				continue
			}
			line := fmt.Sprintf("%v %v: %v", file.Name(), entry.Name, entry.Report.Verdict)
			if entry.Report.Reason != "" {
				line += " (" + entry.Report.Reason + ")"
			}
			fmt.Println(line)
		}
		fmt.Printf("%v: %v valid, %v skipped, %v invalid\n", file.Name(),
			summary.count(schedule.Valid), summary.count(schedule.Skipped), summary.count(schedule.Invalid))
		invalid += summary.count(schedule.Invalid)
	}

	if checked == 0 {
		log.Fatalf("no results documents found in %v", *dirPtr)
	}
	if invalid > 0 {
		fmt.Printf("%v invalid solutions\n", invalid)
		os.Exit(1)
	}
	fmt.Println("all solutions check out")
}

// checkFile judges every entry of one results document.
func checkFile(path string) (fileSummary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileSummary{}, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fileSummary{}, err
	}

	names := lo.Keys(doc)
	sort.Strings(names)

	summary := fileSummary{Path: path}
	for _, name := range names {
		var entry record
		if err := mapstructure.Decode(doc[name], &entry); err != nil {
			return fileSummary{}, fmt.Errorf("entry %v: %w", name, err)
		}
		summary.Entries = append(summary.Entries, entryReport{
			Name:   name,
			Solver: entry.Solver,
			Report: schedule.Validate(entry.Sol),
		})
	}
	return summary, nil
}
