package bot

import (
	"fmt"
	"time"

	"wordler/application"
	"wordler/bot/render"
	"wordler/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token              string
	Location           *time.Location
	ReplyRatePerSecond float64
	WatchesChannel     func(channelID string) bool
}

type Bot struct {
	config      Config
	session     *discordgo.Session
	handler     application.WordleHandler
	stats       service.StatsService
	tournaments service.TournamentService
	limiter     *replyLimiter
	images      *render.LeaderboardImageGenerator
}

// NewSession creates an unopened Discord session. It is separate from New so
// that collaborators such as the MemberDirectory can be built on it first.
func NewSession(token string) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent
	return dg, nil
}

// New wires the handlers onto the session, opens it and registers slash commands
func New(session *discordgo.Session, config Config, handler application.WordleHandler, stats service.StatsService, tournaments service.TournamentService) (*Bot, error) {
	if config.Location == nil {
		config.Location = time.UTC
	}

	bot := &Bot{
		config:      config,
		session:     session,
		handler:     handler,
		stats:       stats,
		tournaments: tournaments,
		limiter:     newReplyLimiter(config.ReplyRatePerSecond),
		images:      render.NewLeaderboardImageGenerator(),
	}

	session.AddHandler(bot.handleMessageCreate)
	session.AddHandler(bot.handleCommands)
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.WithFields(log.Fields{
			"user":   r.User.Username,
			"guilds": len(r.Guilds),
		}).Info("Discord session ready")
	})

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		session.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}
