package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToolCategory enum
type ToolCategory string

const (
	Writing      ToolCategory = "Writing"
	ImageGen     ToolCategory = "Image Generation"
	Coding       ToolCategory = "Coding"
	Productivity ToolCategory = "Productivity"
	Audio        ToolCategory = "Audio"
	OtherTools   ToolCategory = "Other"
)

// VotingStats holds the derived vote tallies for a tool. It is a rebuildable
// cache over the votes collection, never the source of truth.
type VotingStats struct {
	HelpfulCount    int64 `bson:"helpfulCount" json:"helpfulCount"`
	NotHelpfulCount int64 `bson:"notHelpfulCount" json:"notHelpfulCount"`
	TotalVotes      int64 `bson:"totalVotes" json:"totalVotes"`
}

// Tool represents an AI tool listed in the directory
type Tool struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Category    ToolCategory       `bson:"category" json:"category"`
	Website     string             `bson:"website" json:"website"`
	Pricing     *string            `bson:"pricing,omitempty" json:"pricing,omitempty"`
	ImageURL    *string            `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	VotingStats VotingStats        `bson:"votingStats" json:"votingStats"`
	Rating      float64            `bson:"rating" json:"rating"`
	ReviewCount int64              `bson:"reviewCount" json:"reviewCount"`
	CreatedBy   primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Apply runs the per-user vote state machine against the current tallies.
// current is the user's existing vote type (nil when the user has not voted),
// requested is the incoming vote. The returned next is the vote type that
// should be stored afterwards; nil means the vote document must be deleted
// (toggle-off). Counters are clamped at zero and TotalVotes is recomputed so
// helpful + notHelpful == total always holds.
func (s VotingStats) Apply(current *VoteType, requested VoteType) (VotingStats, *VoteType) {
	var next *VoteType

	switch {
	case current == nil:
		// NoVote -> requested
		s.bump(requested, 1)
		next = &requested
	case *current == requested:
		// same vote again: toggle off
		s.bump(requested, -1)
		next = nil
	default:
		// swap
		s.bump(*current, -1)
		s.bump(requested, 1)
		next = &requested
	}

	if s.HelpfulCount < 0 {
		s.HelpfulCount = 0
	}
	if s.NotHelpfulCount < 0 {
		s.NotHelpfulCount = 0
	}
	s.TotalVotes = s.HelpfulCount + s.NotHelpfulCount

	return s, next
}

func (s *VotingStats) bump(t VoteType, delta int64) {
	if t == VoteHelpful {
		s.HelpfulCount += delta
	} else {
		s.NotHelpfulCount += delta
	}
}

// RecountStats rebuilds the tallies from a full scan of a tool's vote
// documents and derives the 0-5 rating from the helpful ratio.
func RecountStats(votes []Vote) (VotingStats, float64) {
	var stats VotingStats
	for _, v := range votes {
		switch v.VoteType {
		case VoteHelpful:
			stats.HelpfulCount++
		case VoteNotHelpful:
			stats.NotHelpfulCount++
		}
	}
	stats.TotalVotes = stats.HelpfulCount + stats.NotHelpfulCount

	rating := 0.0
	if stats.TotalVotes > 0 {
		rating = RoundRating(float64(stats.HelpfulCount) / float64(stats.TotalVotes) * 5)
	}
	return stats, rating
}

// RoundRating rounds a rating to one decimal place.
func RoundRating(r float64) float64 {
	return math.Round(r*10) / 10
}
