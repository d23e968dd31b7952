package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const (
	guildMembersPageSize = 1000
	memberCountTTL       = 10 * time.Minute
)

// guildAPI is the part of the Discord session the member directory needs
type guildAPI interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)
}

type cachedCount struct {
	count     int
	fetchedAt time.Time
}

// MemberDirectory counts the human members who can post in a channel's guild.
// Counts are cached per channel for a short while.
type MemberDirectory struct {
	api guildAPI
	now func() time.Time

	mu     sync.Mutex
	counts map[string]cachedCount
}

// NewMemberDirectory creates a member directory backed by the Discord API
func NewMemberDirectory(api guildAPI) *MemberDirectory {
	return &MemberDirectory{
		api:    api,
		now:    time.Now,
		counts: make(map[string]cachedCount),
	}
}

// MemberCount implements application.MemberDirectory
func (d *MemberDirectory) MemberCount(ctx context.Context, chatID string) (int, error) {
	d.mu.Lock()
	cached, ok := d.counts[chatID]
	d.mu.Unlock()
	if ok && d.now().Sub(cached.fetchedAt) < memberCountTTL {
		return cached.count, nil
	}

	channel, err := d.api.Channel(chatID, discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to look up channel %s: %w", chatID, err)
	}
	if channel.GuildID == "" {
		return 0, fmt.Errorf("channel %s does not belong to a guild", chatID)
	}

	count := 0
	after := ""
	for {
		members, err := d.api.GuildMembers(channel.GuildID, after, guildMembersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return 0, fmt.Errorf("failed to list members of guild %s: %w", channel.GuildID, err)
		}
		for _, member := range members {
			if member.User != nil && !member.User.Bot {
				count++
			}
		}
		if len(members) < guildMembersPageSize {
			break
		}
		after = members[len(members)-1].User.ID
	}

	d.mu.Lock()
	d.counts[chatID] = cachedCount{count: count, fetchedAt: d.now()}
	d.mu.Unlock()

	log.WithFields(log.Fields{
		"chat_id":  chatID,
		"guild_id": channel.GuildID,
		"members":  count,
	}).Debug("Refreshed chat member count")

	return count, nil
}

// Forget drops the cached count for a chat
func (d *MemberDirectory) Forget(chatID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.counts, chatID)
}
