package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the core is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}

			resp, err := c.Ping(cmd.Context())
			if err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}

			status := "OK"
			if _, err := resp.Component("status", &status); err != nil {
				return err
			}
			cmd.Printf("%s (QTime %dms)\n", status, resp.Header.QTime)

			return nil
		},
	}
}

func (a *app) commitCmd() *cobra.Command {
	var soft bool

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit pending updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client(cmd)
			if err != nil {
				return err
			}

			commit, kind := c.Commit, "commit"
			if soft {
				commit, kind = c.SoftCommit, "soft commit"
			}

			resp, err := commit(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s failed: %w", kind, err)
			}
			cmd.Printf("%s done (QTime %dms)\n", kind, resp.Header.QTime)

			return nil
		},
	}
	cmd.Flags().BoolVar(&soft, "soft", false, "issue a soft commit")

	return cmd
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			b, err := f.Encode()
			if err != nil {
				return err
			}
			cmd.Print(string(b))

			return nil
		},
	}
}
