package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/nucamp/internal/campsite"
	"github.com/evcraddock/nucamp/internal/comment"
	"github.com/evcraddock/nucamp/internal/commentform"
	"github.com/evcraddock/nucamp/internal/view"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printCampsiteSummary prints a single campsite in text format.
func printCampsiteSummary(w io.Writer, c *campsite.Campsite) {
	fmt.Fprintf(w, "Campsite #%d\n", c.ID)
	fmt.Fprintf(w, "  Name:     %s\n", c.Name)
	if c.Image != "" {
		fmt.Fprintf(w, "  Image:    %s\n", c.Image)
	}
	if c.Featured {
		fmt.Fprintln(w, "  Featured: yes")
	}
	if c.Description != "" {
		fmt.Fprintf(w, "\n%s\n", c.Description)
	}
}

// printCampsiteTable prints a list of campsites as a formatted table.
func printCampsiteTable(w io.Writer, campsites []*campsite.Campsite) error {
	if len(campsites) == 0 {
		fmt.Fprintln(w, "No campsites found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tNAME\tFEATURED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t----\t--------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, c := range campsites {
		featured := "-"
		if c.Featured {
			featured = "yes"
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, truncate(c.Name, 40), featured); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d campsites\n", len(campsites))
	return nil
}

// printCommentList prints comments in text format, in the order given.
func printCommentList(w io.Writer, comments []*comment.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(w, "No comments.")
		return
	}

	for _, c := range comments {
		fmt.Fprintf(w, "%s\n  -- %s, %s  %s\n\n",
			c.Text, c.Author, view.FormatDate(c.CreatedAt), formatRating(c.Rating))
	}
}

// printCommentSingle prints a single comment in text format.
func printCommentSingle(w io.Writer, c *comment.Comment) {
	fmt.Fprintf(w, "Comment #%d added.\n  %s %s -- %s\n", c.ID, formatRating(c.Rating), c.Text, c.Author)
}

// formatRating returns a star representation of a comment rating.
func formatRating(rating int) string {
	if rating < commentform.MinRating {
		rating = commentform.MinRating
	}
	if rating > commentform.MaxRating {
		rating = commentform.MaxRating
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", commentform.MaxRating-rating)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// parseID parses a campsite ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid campsite ID: %s", arg)
	}
	return id, nil
}
