package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helpful() *VoteType    { v := VoteHelpful; return &v }
func notHelpful() *VoteType { v := VoteNotHelpful; return &v }

func TestApplyFirstVote(t *testing.T) {
	stats, next := VotingStats{}.Apply(nil, VoteHelpful)

	require.NotNil(t, next)
	assert.Equal(t, VoteHelpful, *next)
	assert.Equal(t, VotingStats{HelpfulCount: 1, NotHelpfulCount: 0, TotalVotes: 1}, stats)
}

func TestApplyToggleOff(t *testing.T) {
	stats := VotingStats{HelpfulCount: 1, TotalVotes: 1}

	stats, next := stats.Apply(helpful(), VoteHelpful)

	assert.Nil(t, next)
	assert.Equal(t, VotingStats{}, stats)
}

func TestApplySwap(t *testing.T) {
	stats := VotingStats{HelpfulCount: 3, NotHelpfulCount: 1, TotalVotes: 4}

	stats, next := stats.Apply(helpful(), VoteNotHelpful)

	require.NotNil(t, next)
	assert.Equal(t, VoteNotHelpful, *next)
	assert.Equal(t, VotingStats{HelpfulCount: 2, NotHelpfulCount: 2, TotalVotes: 4}, stats)
}

func TestApplySwapBack(t *testing.T) {
	stats := VotingStats{HelpfulCount: 2, NotHelpfulCount: 2, TotalVotes: 4}

	stats, next := stats.Apply(notHelpful(), VoteHelpful)

	require.NotNil(t, next)
	assert.Equal(t, VoteHelpful, *next)
	assert.Equal(t, VotingStats{HelpfulCount: 3, NotHelpfulCount: 1, TotalVotes: 4}, stats)
}

// Voting helpful twice removes the vote; a third helpful vote must land in
// the same state as a single vote.
func TestApplyToggleIdempotence(t *testing.T) {
	stats := VotingStats{}
	var current *VoteType

	for i := 0; i < 3; i++ {
		stats, current = stats.Apply(current, VoteHelpful)
	}

	require.NotNil(t, current)
	assert.Equal(t, VoteHelpful, *current)
	assert.Equal(t, VotingStats{HelpfulCount: 1, NotHelpfulCount: 0, TotalVotes: 1}, stats)
}

// A stored counter that drifted below the real count must never go negative.
func TestApplyClampsDriftedCounters(t *testing.T) {
	// stored tallies say zero, but a vote document exists
	stats, next := VotingStats{}.Apply(helpful(), VoteHelpful)

	assert.Nil(t, next)
	assert.Equal(t, int64(0), stats.HelpfulCount)
	assert.Equal(t, int64(0), stats.NotHelpfulCount)
	assert.Equal(t, int64(0), stats.TotalVotes)
}

func TestApplyInvariantOverSequences(t *testing.T) {
	sequences := [][]VoteType{
		{VoteHelpful, VoteNotHelpful, VoteNotHelpful, VoteHelpful},
		{VoteNotHelpful, VoteNotHelpful},
		{VoteHelpful, VoteHelpful, VoteHelpful, VoteNotHelpful, VoteHelpful},
	}

	for _, seq := range sequences {
		stats := VotingStats{}
		var current *VoteType
		for _, v := range seq {
			stats, current = stats.Apply(current, v)
			assert.Equal(t, stats.HelpfulCount+stats.NotHelpfulCount, stats.TotalVotes)
			assert.GreaterOrEqual(t, stats.HelpfulCount, int64(0))
			assert.GreaterOrEqual(t, stats.NotHelpfulCount, int64(0))
		}

		// totalVotes equals the number of users with a non-retracted vote
		expected := int64(0)
		if current != nil {
			expected = 1
		}
		assert.Equal(t, expected, stats.TotalVotes)
	}
}

func TestRecountStats(t *testing.T) {
	votes := []Vote{
		{VoteType: VoteHelpful},
		{VoteType: VoteHelpful},
		{VoteType: VoteHelpful},
		{VoteType: VoteNotHelpful},
	}

	stats, rating := RecountStats(votes)

	assert.Equal(t, VotingStats{HelpfulCount: 3, NotHelpfulCount: 1, TotalVotes: 4}, stats)
	assert.Equal(t, 3.8, rating) // 3/4 * 5 = 3.75, rounded to one decimal
}

func TestRecountStatsEmpty(t *testing.T) {
	stats, rating := RecountStats(nil)

	assert.Equal(t, VotingStats{}, stats)
	assert.Equal(t, 0.0, rating)
}

func TestRecountStatsAllHelpful(t *testing.T) {
	votes := []Vote{{VoteType: VoteHelpful}, {VoteType: VoteHelpful}}

	stats, rating := RecountStats(votes)

	assert.Equal(t, int64(2), stats.TotalVotes)
	assert.Equal(t, 5.0, rating)
}

func TestValidVoteType(t *testing.T) {
	assert.True(t, ValidVoteType("helpful"))
	assert.True(t, ValidVoteType("notHelpful"))
	assert.False(t, ValidVoteType("nothelpful"))
	assert.False(t, ValidVoteType(""))
	assert.False(t, ValidVoteType("upvote"))
}
