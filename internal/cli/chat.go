package cli

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/thefortaiagency/bendavis/internal/chatclient"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	var siteURL string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with Ben and Brent through a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := chatclient.NewClient(siteURL, nil)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			conv := chatclient.NewConversation(client, opts.logger.Named("chat"))
			return chatclient.RunREPL(ctx, conv, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&siteURL, "url", "http://localhost:3000", "Base URL of the site")
	return cmd
}
