package cli

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trtslyr/islajournal/internal/domain"
	"github.com/trtslyr/islajournal/internal/generation"
	"github.com/trtslyr/islajournal/internal/service"
)

// QueryCmd returns the query command
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Ask a question about the journal",
		Long:  "Retrieve relevant entries, assemble a prompt and ask the local model",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runQuery,
	}

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	question := strings.Join(args, " ")

	env, err := openLocalEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	builder := service.NewContextBuilder(env.settings, env.files, env.search, env.cfg.ContextTokenBudget)
	generator := generation.NewClientWithConfig(generation.Config{
		BaseURL: env.cfg.GenerationURL,
		Model:   env.cfg.GenerationModel,
	})
	querySvc := service.NewQueryService(builder, generator, service.DefaultAnswerTokens)

	conversation, err := env.conversation.Recent(ctx, 50)
	if err != nil {
		return err
	}

	settings, err := env.settings.ContextSettings(ctx)
	if err != nil {
		return err
	}

	answer, err := querySvc.Answer(ctx, question, conversation, settings)
	if err != nil {
		return err
	}

	if err := env.conversation.Append(ctx, &domain.ConversationMessage{
		Role:    domain.MessageRoleUser,
		Content: question,
	}); err != nil {
		log.Printf("Failed to record user message: %v", err)
	}
	if err := env.conversation.Append(ctx, &domain.ConversationMessage{
		Role:    domain.MessageRoleAssistant,
		Content: answer,
	}); err != nil {
		log.Printf("Failed to record assistant message: %v", err)
	}

	fmt.Println(answer)
	return nil
}
