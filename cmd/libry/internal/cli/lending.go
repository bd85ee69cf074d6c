package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func parseIDs(args []string) (memberID, bookID uuid.UUID, err error) {
	if memberID, err = uuid.Parse(args[0]); err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid member id: %w", err)
	}

	if bookID, err = uuid.Parse(args[1]); err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid book id: %w", err)
	}

	return memberID, bookID, nil
}

func newIssueCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "issue MEMBER_ID BOOK_ID",
		Short: "Lend a copy of a book to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			memberID, bookID, err := parseIDs(args)
			if err != nil {
				return err
			}

			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			tx, err := a.Lending.Issue(cmd.Context(), memberID, bookID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "issued %s at %s\n", tx.ID, tx.IssuedAt.Format("2006-01-02 15:04"))

			return nil
		},
	}
}

func newReturnCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "return MEMBER_ID BOOK_ID",
		Short: "Take back a lent book and charge any late fee",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			memberID, bookID, err := parseIDs(args)
			if err != nil {
				return err
			}

			a, err := e.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			r, err := a.Lending.Return(cmd.Context(), memberID, bookID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "returned after %d days, %d late, fee %.2f, member now owes %.2f\n",
				r.Days, r.LateDays, r.Fee, r.Debt)

			return nil
		},
	}
}
