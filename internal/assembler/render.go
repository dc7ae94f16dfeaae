package assembler

import (
	"fmt"
	"strings"
)

// RenderScript flattens a script package into the plain-text script a
// producer would read from. Transitions are interleaved between the content
// turns of adjacent segments.
func RenderScript(pkg *ScriptPackage) string {
	if pkg == nil {
		return ""
	}

	transitionAfter := make(map[int]string, len(pkg.Transitions))
	for i := range pkg.Transitions {
		transitionAfter[pkg.Transitions[i].BetweenSegmentIDs[0]] = pkg.Transitions[i].Script
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", strings.ToUpper(pkg.Metadata.EpisodeTitle))
	fmt.Fprintf(&b, "Estimated duration: %.1f minutes\n\n", pkg.Metadata.TotalDurationMinutes)
	b.WriteString("=== INTRO ===\n\n")
	b.WriteString(pkg.Intro.Script)
	b.WriteString("\n\n=== MAIN CONTENT ===\n\n")

	for i := range pkg.MainContent {
		turn := &pkg.MainContent[i]
		b.WriteString(turn.Script)
		b.WriteString("\n\n")

		lastOfSegment := i+1 == len(pkg.MainContent) || pkg.MainContent[i+1].SegmentID != turn.SegmentID
		if !lastOfSegment {
			continue
		}
		if script, ok := transitionAfter[turn.SegmentID]; ok {
			b.WriteString(script)
			b.WriteString("\n\n")
		}
	}

	b.WriteString("=== OUTRO ===\n\n")
	b.WriteString(pkg.Outro.Script)

	b.WriteString("\n\n=== SHOW NOTES ===\n\n")
	b.WriteString(pkg.ShowNotes.Summary)
	b.WriteString("\n")
	if len(pkg.ShowNotes.KeyPoints) > 0 {
		b.WriteString("\nKey points:\n")
		for _, point := range pkg.ShowNotes.KeyPoints {
			fmt.Fprintf(&b, "  - %s\n", point)
		}
	}
	if len(pkg.ShowNotes.Timestamps) > 0 {
		b.WriteString("\nTimestamps:\n")
		for _, entry := range pkg.ShowNotes.Timestamps {
			fmt.Fprintf(&b, "  %s  %s\n", entry.Time, entry.Topic)
		}
	}
	if len(pkg.ShowNotes.Resources) > 0 {
		b.WriteString("\nResources:\n")
		for _, resource := range pkg.ShowNotes.Resources {
			fmt.Fprintf(&b, "  - %s: %s\n", resource.Title, resource.URL)
		}
	}
	return b.String()
}
