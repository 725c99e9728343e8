package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FishBot_Go/internal/logger"
)

// CommandHandler handles a slash command
type CommandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// DefaultRegistry returns a registry holding every game command
func DefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()
	r.Register(PingCommand())
	r.Register(FishCommand())
	r.Register(GachaCommand())
	r.Register(SignInCommand())
	r.Register(ProfileCommand())
	r.Register(TechCommand())
	return r
}

// Handle dispatches an application command interaction
func (r *CommandRegistry) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	name := i.ApplicationCommandData().Name
	h, ok := r.Handlers[name]
	if !ok {
		return
	}
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())
	logger.FromContext(ctx).Debug("Discord command", "command", name)
	h(ctx, s, i, client)
}

// sortedCommands returns the registry's commands ordered by name
func (r *CommandRegistry) sortedCommands() []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(r.Commands))
	for _, cmd := range r.Commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// RegisterCommands overwrites the application's commands only when they
// differ from what Discord already has, to stay clear of rate limits.
func (b *Bot) RegisterCommands(forceUpdate bool) error {
	desired := b.Registry.sortedCommands()

	if !forceUpdate {
		existing, err := b.Session.ApplicationCommands(b.AppID, b.GuildID)
		if err != nil {
			return fmt.Errorf("failed to fetch existing commands: %w", err)
		}
		if commandsEqual(existing, desired) {
			slog.Info(LogMsgCommandsSkipped, "count", len(existing))
			return nil
		}
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, b.GuildID, desired); err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}
	slog.Info(LogMsgCommandsUpdated, "count", len(desired), "forced", forceUpdate)
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	byName := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		byName[cmd.Name] = cmd
	}

	for _, d := range desired {
		e, ok := byName[d.Name]
		if !ok || !commandEqual(e, d) {
			return false
		}
	}
	return true
}

func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}
	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}
	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}
	return true
}

func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description || a.Required != b.Required {
		return false
	}
	if len(a.Choices) != len(b.Choices) || len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Choices {
		// Discord returns numeric choice values as float64
		if a.Choices[i].Name != b.Choices[i].Name || fmt.Sprint(a.Choices[i].Value) != fmt.Sprint(b.Choices[i].Value) {
			return false
		}
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}
	return true
}

// deferResponse acknowledges an interaction before a slow API call.
// Returns false if deferral failed.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

// respondError replaces the deferred response with a plain message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "error", err)
	}
}

func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	respondError(s, i, formatFriendlyError(err))
}

func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if embed.Footer == nil {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: FooterText}
	}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "error", err)
	}
}

// runEmbedCommand defers, makes sure the caller has an account, runs the
// action and renders its embed or a friendly error.
func runEmbedCommand(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	client *APIClient,
	action func(ctx context.Context, discordID string) (*discordgo.MessageEmbed, error),
) {
	if !deferResponse(s, i) {
		return
	}

	user := getInteractionUser(i)
	if _, err := client.RegisterUser(ctx, user.ID, user.Username); err != nil {
		logger.FromContext(ctx).Error(LogMsgCommandFailed, "step", "register", "error", err)
		respondFriendlyError(s, i, err)
		return
	}

	embed, err := action(ctx, user.ID)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgCommandFailed, "command", i.ApplicationCommandData().Name, "error", err)
		respondFriendlyError(s, i, err)
		return
	}
	sendEmbed(s, i, embed)
}

// getInteractionUser handles both guild (i.Member.User) and DM (i.User) contexts
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// optionMap indexes options by name
func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}
