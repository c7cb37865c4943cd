package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/futureslog/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the TradeAI buddy",
	Long: `Ask the TradeAI buddy about your trading.

Subcommands:
  send    - Send a message and print the reply
  history - Print the conversation so far
  prompts - List suggested questions

Examples:
  futureslog chat send "How do I improve my R:R?"
  futureslog chat history`,
}

var chatSendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send a message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChatSend,
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the conversation so far",
	Args:  cobra.NoArgs,
	RunE:  runChatHistory,
}

var chatPromptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List suggested questions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for i, p := range chat.QuickPrompts() {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, p)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.AddCommand(chatSendCmd, chatHistoryCmd, chatPromptsCmd)
}

func runChatSend(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	reply, err := a.Chat.Send(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "buddy: %s\n", reply.Content)
	return nil
}

func runChatHistory(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	for _, m := range a.Chat.Messages() {
		who := "buddy"
		if m.IsUser {
			who = "you"
		}
		fmt.Fprintf(out, "[%s] %s: %s\n", m.Timestamp.Local().Format("2006-01-02 15:04"), who, m.Content)
	}
	return nil
}
