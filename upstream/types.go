package upstream

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ManageGuild is the permission bit a user needs to configure a guild.
const ManageGuild Permissions = 0x20

// Permissions is a guild permission bitmask. The upstream sends it as a decimal string.
type Permissions int64

func (p *Permissions) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid permissions %q: %w", s, err)
		}
		*p = Permissions(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid permissions %s: %w", string(b), err)
	}
	*p = Permissions(n)
	return nil
}

// Has reports whether every bit in flag is set.
func (p Permissions) Has(flag Permissions) bool {
	return p&flag == flag
}

// Profile is the authenticated user as returned by /users/@me.
// Raw keeps the full upstream document so it can be passed through unchanged.
type Profile struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Raw      json.RawMessage `json:"-"`
}

func (p *Profile) UnmarshalJSON(b []byte) error {
	type plain Profile
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Profile(v)
	p.Raw = append(json.RawMessage(nil), b...)
	return nil
}

func (p Profile) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return p.Raw, nil
	}
	type plain Profile
	return json.Marshal(plain(p))
}

// GuildSummary is one entry of /users/@me/guilds.
type GuildSummary struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Icon        string          `json:"icon,omitempty"`
	Owner       bool            `json:"owner"`
	Permissions Permissions     `json:"permissions"`
	Raw         json.RawMessage `json:"-"`
}

func (g *GuildSummary) UnmarshalJSON(b []byte) error {
	type plain GuildSummary
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*g = GuildSummary(v)
	g.Raw = append(json.RawMessage(nil), b...)
	return nil
}

func (g GuildSummary) MarshalJSON() ([]byte, error) {
	if len(g.Raw) > 0 {
		return g.Raw, nil
	}
	type plain GuildSummary
	return json.Marshal(plain(g))
}

// CanManage is true when the requester holds the manage-guild bit.
func (g GuildSummary) CanManage() bool {
	return g.Permissions.Has(ManageGuild)
}

// FilterManageable keeps only the guilds the requester can configure.
func FilterManageable(guilds []GuildSummary) []GuildSummary {
	out := make([]GuildSummary, 0, len(guilds))
	for _, g := range guilds {
		if g.CanManage() {
			out = append(out, g)
		}
	}
	return out
}

// ChannelType is the upstream channel kind.
type ChannelType int

const (
	ChannelText         ChannelType = 0
	ChannelVoice        ChannelType = 2
	ChannelCategory     ChannelType = 4
	ChannelAnnouncement ChannelType = 5
)

// ChannelSummary is one entry of /guilds/{id}/channels.
type ChannelSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     ChannelType     `json:"type"`
	ParentID string          `json:"parent_id,omitempty"`
	Position int             `json:"position"`
	Raw      json.RawMessage `json:"-"`
}

func (c *ChannelSummary) UnmarshalJSON(b []byte) error {
	type plain struct {
		ID       string      `json:"id"`
		Name     string      `json:"name"`
		Type     ChannelType `json:"type"`
		ParentID *string     `json:"parent_id"`
		Position int         `json:"position"`
	}
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = ChannelSummary{ID: v.ID, Name: v.Name, Type: v.Type, Position: v.Position}
	if v.ParentID != nil {
		c.ParentID = *v.ParentID
	}
	c.Raw = append(json.RawMessage(nil), b...)
	return nil
}

func (c ChannelSummary) MarshalJSON() ([]byte, error) {
	if len(c.Raw) > 0 {
		return c.Raw, nil
	}
	type plain ChannelSummary
	return json.Marshal(plain(c))
}

// IsText covers channels a bot can post messages to.
func (c ChannelSummary) IsText() bool {
	return c.Type == ChannelText || c.Type == ChannelAnnouncement
}

func (c ChannelSummary) IsVoice() bool {
	return c.Type == ChannelVoice
}

// Channel kinds accepted by FilterChannels.
const (
	ChannelKindText  = "text"
	ChannelKindVoice = "voice"
)

// FilterChannels keeps the channels of kind. An empty kind keeps everything;
// an unknown kind is reported with ok=false.
func FilterChannels(channels []ChannelSummary, kind string) (out []ChannelSummary, ok bool) {
	var keep func(ChannelSummary) bool
	switch kind {
	case "":
		return channels, true
	case ChannelKindText:
		keep = ChannelSummary.IsText
	case ChannelKindVoice:
		keep = ChannelSummary.IsVoice
	default:
		return nil, false
	}
	out = make([]ChannelSummary, 0, len(channels))
	for _, c := range channels {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out, true
}
