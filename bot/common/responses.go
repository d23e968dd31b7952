package common

import (
	"bytes"

	"github.com/bwmarrin/discordgo"
)

// Attachment is a rendered image sent alongside an embed
type Attachment struct {
	Name string
	Data []byte
}

// DeferResponse sends a deferred response to give more time for processing
func DeferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: flags,
		},
	})
}

// RespondWithEmbed sends an embed as an interaction response
func RespondWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}

	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// FollowUpWithEmbed sends an embed as a follow-up message. A non-nil attachment
// is uploaded with the message and shown as the embed image.
func FollowUpWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, attachment *Attachment) (*discordgo.Message, error) {
	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	}

	if attachment != nil {
		embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + attachment.Name}
		params.Files = []*discordgo.File{{
			Name:        attachment.Name,
			ContentType: "image/png",
			Reader:      bytes.NewReader(attachment.Data),
		}}
	}

	return s.FollowupMessageCreate(i.Interaction, true, params)
}
