package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mycelian/dixa-mcp/client"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const requestTimeout = 30 * time.Second

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	var (
		baseURL string
		debug   bool
	)

	rootCmd := &cobra.Command{
		Use:           "dixactl",
		Short:         "Command line access to the Dixa API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	defaultURL := getEnv("DIXA_BASE_URL", client.DefaultBaseURL)
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", defaultURL, "Base URL of the Dixa API")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	newClient := func() (*client.Client, error) {
		return client.New(baseURL, client.WithDebugLogging(debug))
	}

	rootCmd.AddCommand(newAPIInfoCmd(newClient))
	rootCmd.AddCommand(newSearchConversationsCmd(newClient))
	rootCmd.AddCommand(newGetConversationCmd(newClient))
	rootCmd.AddCommand(newListTagsCmd(newClient))
	rootCmd.AddCommand(newTagConversationCmd(newClient))
	rootCmd.AddCommand(newListAgentsCmd(newClient))
	rootCmd.AddCommand(newGetEndUserCmd(newClient))
	rootCmd.AddCommand(newListMetricsCmd(newClient))
	return rootCmd
}

type clientFactory func() (*client.Client, error)

// runJSON builds a client, runs call with a bounded context and pretty-prints
// the raw JSON result.
func runJSON(cmd *cobra.Command, newClient clientFactory, call func(context.Context, *client.Client) (json.RawMessage, error)) error {
	c, err := newClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	start := time.Now()
	raw, err := call(ctx, c)
	if err != nil {
		log.Error().Err(err).Str("command", cmd.Name()).Dur("elapsed", time.Since(start)).Msg("request failed")
		return err
	}
	log.Debug().Str("command", cmd.Name()).Dur("elapsed", time.Since(start)).Msg("request completed")
	return printJSON(cmd.OutOrStdout(), raw)
}

func printJSON(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, err = fmt.Fprintln(w, string(raw))
		return err
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}

func newAPIInfoCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "api-info",
		Short: "Show the masked API key and the organization it belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			report := c.GetAPIInfo(ctx)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), report.Text())
			return err
		},
	}
}

func newSearchConversationsCmd(newClient clientFactory) *cobra.Command {
	var (
		query, pageKey string
		exact          bool
		pageLimit      int
	)
	cmd := &cobra.Command{
		Use:   "search-conversations",
		Short: "Search conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJSON(cmd, newClient, func(ctx context.Context, c *client.Client) (json.RawMessage, error) {
				return c.SearchConversations(ctx, query, exact, pageKey, pageLimit)
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query (required)")
	cmd.Flags().BoolVar(&exact, "exact", true, "Exact matching")
	cmd.Flags().StringVar(&pageKey, "page-key", "", "Pagination key")
	cmd.Flags().IntVar(&pageLimit, "page-limit", client.DefaultPageLimit, "Results per page")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func newGetConversationCmd(newClient clientFactory) *cobra.Command {
	var part string
	cmd := &cobra.Command{
		Use:   "get-conversation <conversation-id>",
		Short: "Get a conversation or one of its messages, notes, ratings or tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJSON(cmd, newClient, func(ctx context.Context, c *client.Client) (json.RawMessage, error) {
				switch part {
				case "":
					return c.GetConversation(ctx, args[0])
				case "messages":
					return c.GetConversationMessages(ctx, args[0])
				case "notes":
					return c.GetConversationNotes(ctx, args[0])
				case "ratings":
					return c.GetConversationRatings(ctx, args[0])
				case "tags":
					return c.GetConversationTags(ctx, args[0])
				default:
					return nil, fmt.Errorf("unknown part %q (want messages, notes, ratings or tags)", part)
				}
			})
		},
	}
	cmd.Flags().StringVar(&part, "part", "", "Subresource: messages|notes|ratings|tags")
	return cmd
}

func newListTagsCmd(newClient clientFactory) *cobra.Command {
	var includeDeactivated bool
	cmd := &cobra.Command{
		Use:   "list-tags",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJSON(cmd, newClient, func(ctx context.Context, c *client.Client) (json.RawMessage, error) {
				return c.ListTags(ctx, includeDeactivated)
			})
		},
	}
	cmd.Flags().BoolVar(&includeDeactivated, "include-deactivated", false, "Include deactivated tags")
	return cmd
}

func newTagConversationCmd(newClient clientFactory) *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   "tag-conversation <conversation-id> <tag-id>",
		Short: "Add a tag to a conversation, or remove it with --remove",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJSON(cmd, newClient, func(ctx context.Context, c *client.Client) (json.RawMessage, error) {
				if remove {
					return c.RemoveConversationTag(ctx, args[0], args[1])
				}
				return c.TagConversation(ctx, args[0], args[1])
			})
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the tag instead of adding it")
	return cmd
}

func newListAgentsCmd(newClient clientFactory) *cobra.Command {
	var pageLimit int
	cmd := &cobra.Command{
		Use:   "list-agents",
		Short: "List agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJSON(cmd, newClient, func(ctx context.Context, c *client.Client) (json.RawMessage, error) {
				return c.ListAgents(ctx, pageLimit)
			})
		},
	}
	cmd.Flags().IntVar(&pageLimit, "page-limit", client.DefaultPageLimit, "Results per page")
	return cmd
}

func newGetEndUserCmd(newClient clientFactory) *cobra.Command {
	var conversations bool
	cmd := &cobra.Command{
		Use:   "get-end-user <user-id>",
		Short: "Get an end user, or their conversations with --conversations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJSON(cmd, newClient, func(ctx context.Context, c *client.Client) (json.RawMessage, error) {
				if conversations {
					return c.GetEndUserConversations(ctx, args[0], "", client.DefaultPageLimit)
				}
				return c.GetEndUser(ctx, args[0])
			})
		},
	}
	cmd.Flags().BoolVar(&conversations, "conversations", false, "List the user's conversations")
	return cmd
}

func newListMetricsCmd(newClient clientFactory) *cobra.Command {
	var records bool
	cmd := &cobra.Command{
		Use:   "list-analytics",
		Short: "List analytics metrics, or records with --records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJSON(cmd, newClient, func(ctx context.Context, c *client.Client) (json.RawMessage, error) {
				if records {
					return c.ListAnalyticsRecords(ctx, "", client.DefaultPageLimit)
				}
				return c.ListAnalyticsMetrics(ctx, "", client.DefaultPageLimit)
			})
		},
	}
	cmd.Flags().BoolVar(&records, "records", false, "List records instead of metrics")
	return cmd
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
