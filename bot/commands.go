package bot

import (
	"context"
	"fmt"
	"time"

	"wordler/bot/common"
	"wordler/bot/render"
	"wordler/infrastructure/observability"
	"wordler/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const wordleCommandName = "wordle"

// commandResponse is what a subcommand hands back to be posted
type commandResponse struct {
	embed      *discordgo.MessageEmbed
	attachment *common.Attachment
}

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        wordleCommandName,
		Description: "Wordle scores, leaderboards and tournaments",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "stats",
				Description: "Show a player's Wordle statistics",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionUser,
						Name:        "user",
						Description: "Player to show (defaults to you)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "leaderboard",
				Description: "Rank everyone's result for one game",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "game",
						Description: "Game number (defaults to the latest)",
						Required:    false,
						MinValue:    floatPtr(1),
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "standings",
				Description: "Rank all players in this channel by total score",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "tournament",
				Description: "Show standings for a half-month tournament",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "when",
						Description: "A date, a period like 2024-03-T1, or text like \"yesterday\" (defaults to now)",
						Required:    false,
					},
				},
			},
		},
	},
}

func floatPtr(v float64) *float64 {
	return &v
}

func (b *Bot) registerCommands() error {
	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}
	return nil
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != wordleCommandName {
		return
	}
	if len(data.Options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand: stats, leaderboard, standings or tournament")
		return
	}

	metrics := observability.GetMetrics()
	metrics.RecordMessageRead(observability.MessageTypeCommand)

	sub := data.Options[0]
	if err := common.DeferResponse(s, i, false); err != nil {
		log.WithError(err).WithField("subcommand", sub.Name).Error("Failed to defer command response")
		return
	}

	ctx := context.Background()
	response, err := b.dispatch(ctx, s, i, sub)
	if err != nil {
		metrics.RecordCommand(sub.Name, observability.OutcomeError)
		common.HandleError(s, i, err, true)
		return
	}

	if _, err := common.FollowUpWithEmbed(s, i, response.embed, response.attachment); err != nil {
		metrics.RecordCommand(sub.Name, observability.OutcomeError)
		log.WithError(err).WithField("subcommand", sub.Name).Error("Failed to send command response")
		return
	}
	metrics.RecordCommand(sub.Name, observability.OutcomeSuccess)
}

func (b *Bot) dispatch(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) (commandResponse, error) {
	options := optionMap(sub.Options)
	names := func(playerID string) string {
		return GetDisplayName(s, i.GuildID, playerID)
	}

	switch sub.Name {
	case "stats":
		playerID := ""
		if user := common.InteractionUser(i); user != nil {
			playerID = user.ID
		}
		if opt, ok := options["user"]; ok {
			playerID = opt.UserValue(nil).ID
		}
		return b.statsResponse(i.ChannelID, playerID, names)
	case "leaderboard":
		game := 0
		if opt, ok := options["game"]; ok {
			game = int(opt.IntValue())
		}
		return b.leaderboardResponse(i.ChannelID, game, names)
	case "standings":
		return b.standingsResponse(i.ChannelID, names)
	case "tournament":
		when := ""
		if opt, ok := options["when"]; ok {
			when = opt.StringValue()
		}
		return b.tournamentResponse(ctx, i.ChannelID, when, time.Now(), names)
	default:
		return commandResponse{}, common.NewUserError("Unknown subcommand", "unknown subcommand "+sub.Name)
	}
}

// statsResponse builds the /wordle stats reply
func (b *Bot) statsResponse(chatID, playerID string, names render.NameResolver) (commandResponse, error) {
	if playerID == "" {
		return commandResponse{}, common.NewUserError("I couldn't tell who to look up.", "stats command without a user")
	}

	displayName := names(playerID)
	stats := b.stats.PlayerStats(chatID, playerID)
	response := commandResponse{embed: buildStatsEmbed(displayName, stats)}

	if stats.TotalGames > 0 {
		chart, err := render.GenerateDistributionChart(displayName, stats, render.DefaultPalette)
		if err != nil {
			return commandResponse{}, common.NewSystemError(err, "failed to render distribution chart")
		}
		response.attachment = &common.Attachment{Name: "distribution.png", Data: chart}
	}

	return response, nil
}

// leaderboardResponse builds the /wordle leaderboard reply. Game zero means the latest game.
func (b *Bot) leaderboardResponse(chatID string, gameNumber int, names render.NameResolver) (commandResponse, error) {
	if gameNumber == 0 {
		latest, ok := b.stats.LatestGame(chatID)
		if !ok {
			return commandResponse{}, common.NewUserError("No Wordle results have been posted in this channel yet.", "leaderboard requested for empty chat")
		}
		gameNumber = latest
	}

	ranked := b.stats.GameLeaderboard(chatID, gameNumber)
	if len(ranked) == 0 {
		return commandResponse{}, common.NewUserError(
			fmt.Sprintf("Nobody has posted Wordle %s here yet.", models.FormatNumber(gameNumber)),
			"leaderboard requested for game without results",
		)
	}

	image, err := b.images.GenerateGameLeaderboard(gameNumber, ranked, names)
	if err != nil {
		return commandResponse{}, common.NewSystemError(err, "failed to render game leaderboard")
	}

	return commandResponse{
		embed:      buildGameLeaderboardEmbed(gameNumber, ranked),
		attachment: &common.Attachment{Name: "leaderboard.png", Data: image},
	}, nil
}

// standingsResponse builds the /wordle standings reply
func (b *Bot) standingsResponse(chatID string, names render.NameResolver) (commandResponse, error) {
	standings := b.stats.Standings(chatID)
	if len(standings) == 0 {
		return commandResponse{}, common.NewUserError("No Wordle results have been posted in this channel yet.", "standings requested for empty chat")
	}

	image, err := b.images.GenerateStandings("All-time standings", standings, names)
	if err != nil {
		return commandResponse{}, common.NewSystemError(err, "failed to render standings")
	}

	return commandResponse{
		embed:      buildStandingsEmbed("📈 All-time standings", standings),
		attachment: &common.Attachment{Name: "standings.png", Data: image},
	}, nil
}

// tournamentResponse builds the /wordle tournament reply
func (b *Bot) tournamentResponse(ctx context.Context, chatID, when string, now time.Time, names render.NameResolver) (commandResponse, error) {
	period, err := resolvePeriod(when, now, b.config.Location)
	if err != nil {
		return commandResponse{}, err
	}

	standings, err := b.tournaments.Standings(ctx, chatID, period)
	if err != nil {
		return commandResponse{}, common.NewSystemError(err, "failed to compute tournament standings")
	}

	response := commandResponse{embed: buildStandingsEmbed(periodTitle(period), standings)}
	if len(standings) == 0 {
		return response, nil
	}

	image, err := b.images.GenerateStandings("Tournament "+period.ID, standings, names)
	if err != nil {
		return commandResponse{}, common.NewSystemError(err, "failed to render tournament standings")
	}
	response.attachment = &common.Attachment{Name: "tournament.png", Data: image}

	return response, nil
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		out[opt.Name] = opt
	}
	return out
}
