package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/nucamp/internal/comment"
	"github.com/evcraddock/nucamp/internal/commentform"
)

func newCommentCmd() *cobra.Command {
	var (
		rating int
		author string
	)

	cmd := &cobra.Command{
		Use:   `comment <id> --author NAME [--rating N] ["text"]`,
		Short: "Add a comment to a campsite",
		Long:  "Add a rated comment to a campsite. The author must be 2-15 characters; the rating is 1-5.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			c, err := newAPIClient()
			if err != nil {
				return err
			}

			var added *comment.Comment
			var addErr error
			form := commentform.NewForm(id, func(campsiteID int64, rating int, author, text string) {
				added, addErr = c.AddComment(campsiteID, rating, author, text)
			}, nil)

			if err := fillDraft(form, rating, author, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			if err := form.Submit(); err != nil {
				return err
			}
			if addErr != nil {
				return addErr
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), added)
			}
			printCommentSingle(cmd.OutOrStdout(), added)
			return nil
		},
	}

	cmd.Flags().IntVar(&rating, "rating", commentform.DefaultRating, "rating from 1 to 5")
	cmd.Flags().StringVar(&author, "author", "", "your name (2-15 characters)")

	return cmd
}

// fillDraft applies the command line values to a comment draft.
func fillDraft(form *commentform.Form, rating int, author, text string) error {
	if err := form.UpdateField(string(commentform.FieldRating), strconv.Itoa(rating)); err != nil {
		return err
	}
	if err := form.UpdateField(string(commentform.FieldAuthor), author); err != nil {
		return err
	}
	return form.UpdateField(string(commentform.FieldText), text)
}
