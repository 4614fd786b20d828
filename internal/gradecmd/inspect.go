package gradecmd

import (
	"fmt"

	"github.com/specgrade/specgrade/internal/groundtruth"
	"github.com/specgrade/specgrade/internal/match"
)

func executeInspect(path string) error {
	doc, err := groundtruth.NewLoader(path).Load()
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Chunks: %d\n", len(doc.Chunks))
	for _, c := range doc.Chunks {
		fmt.Printf("  %-40s pages %d-%d\n", c.Title, c.StartPage, c.EndPage)
	}
	fmt.Printf("Entities: %d\n", len(doc.Entities))
	for _, e := range doc.Entities {
		fmt.Printf("  %-12s %-24s dia=%-8s sched=%-4s page=%d\n",
			e.Type, e.Material, e.Diameter, e.Schedule, e.LocationPage)
	}

	valid, issues := match.ValidateChunkContinuity(doc.Chunks)
	if valid {
		fmt.Println("Continuity: OK")
	} else {
		fmt.Println("Continuity issues:")
		for _, issue := range issues {
			fmt.Printf("  - %s\n", issue)
		}
	}

	return nil
}
