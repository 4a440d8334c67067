// Package format renders twitterapi.io responses as deterministic,
// human-readable text blocks for agent consumption. Every function is a
// pure transform: missing optional fields fall back to fixed defaults
// ("unknown", "Unknown", 0) and empty collections yield fixed sentinel
// strings, never an empty string and never a panic. Input order is
// preserved; enumerated lists are 1-indexed.
package format

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/birdwatch/twitterapi-mcp/internal/twitterapi"
)

// Display defaults for absent optional fields.
const (
	defaultUserName  = "unknown"
	defaultName      = "Unknown"
	defaultText      = "No content"
	defaultCreatedAt = "unknown"
)

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Tweet renders a single tweet as a multi-line block.
func Tweet(t *twitterapi.Tweet) string {
	if t == nil {
		return "Tweet not available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tweet by @%s (%s):\n\n",
		orDefault(t.Author.UserName, defaultUserName),
		orDefault(t.Author.Name, defaultName))
	fmt.Fprintf(&b, "%s\n\n", orDefault(t.Text, defaultText))
	fmt.Fprintf(&b, "Posted at: %s\n", orDefault(t.CreatedAt, defaultCreatedAt))
	fmt.Fprintf(&b, "Likes: %d | Retweets: %d | Replies: %d",
		t.LikeCount, t.RetweetCount, t.ReplyCount)

	if len(t.Entities.Hashtags) > 0 {
		tags := make([]string, 0, len(t.Entities.Hashtags))
		for _, h := range t.Entities.Hashtags {
			tags = append(tags, "#"+h.Text)
		}
		fmt.Fprintf(&b, "\nHashtags: %s", strings.Join(tags, " "))
	}

	return b.String()
}

// User renders a user profile as a multi-line block.
func User(u *twitterapi.User) string {
	if u == nil {
		return "User not available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Twitter Profile: @%s (%s)\n\n",
		orDefault(u.UserName, defaultUserName),
		orDefault(u.Name, defaultName))

	if u.Description != "" {
		fmt.Fprintf(&b, "Bio: %s\n\n", u.Description)
	}
	if u.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", u.Location)
	}

	fmt.Fprintf(&b, "Followers: %d | Following: %d\n", u.Followers, u.Following)
	fmt.Fprintf(&b, "Tweets: %d | Media: %d\n", u.StatusesCount, u.MediaCount)
	fmt.Fprintf(&b, "Account created: %s\n", orDefault(u.CreatedAt, defaultCreatedAt))

	if u.IsBlueVerified {
		b.WriteString("✓ Blue Verified\n")
	}

	return b.String()
}

// TweetList renders a generic collection of tweets with a count header.
func TweetList(tweets []twitterapi.Tweet) string {
	if len(tweets) == 0 {
		return "No tweets available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tweets (%d):\n\n", len(tweets))
	b.WriteString(TweetItems(tweets, true))
	return b.String()
}

// TweetItems renders tweets as a 1-indexed enumeration in input order.
// withAuthor controls whether each entry leads with the author handle;
// a user's own timeline omits it.
func TweetItems(tweets []twitterapi.Tweet, withAuthor bool) string {
	var b strings.Builder
	for i, t := range tweets {
		if withAuthor {
			fmt.Fprintf(&b, "%d. @%s (%s): %s\n", i+1,
				orDefault(t.Author.UserName, defaultUserName),
				orDefault(t.Author.Name, defaultName),
				orDefault(t.Text, defaultText))
		} else {
			fmt.Fprintf(&b, "%d. %s\n", i+1, orDefault(t.Text, defaultText))
		}
		fmt.Fprintf(&b, "   Posted at: %s\n", orDefault(t.CreatedAt, defaultCreatedAt))
		fmt.Fprintf(&b, "   Likes: %d | Retweets: %d | Replies: %d\n\n",
			t.LikeCount, t.RetweetCount, t.ReplyCount)
	}
	return b.String()
}

// UserItems renders users as a 1-indexed enumeration in input order.
func UserItems(users []twitterapi.User) string {
	var b strings.Builder
	for i, u := range users {
		fmt.Fprintf(&b, "%d. @%s (%s)\n", i+1,
			orDefault(u.UserName, defaultUserName),
			orDefault(u.Name, defaultName))
		if u.Description != "" {
			fmt.Fprintf(&b, "   Bio: %s\n", u.Description)
		}
		fmt.Fprintf(&b, "   Followers: %d | Following: %d\n\n", u.Followers, u.Following)
	}
	return b.String()
}

// Trends renders trending topics. Tweet volume is the only count that
// renders with thousands separators.
func Trends(trends []twitterapi.Trend) string {
	if len(trends) == 0 {
		return "No trending topics available"
	}

	var b strings.Builder
	b.WriteString("Current Twitter Trends:\n\n")
	for i, tr := range trends {
		fmt.Fprintf(&b, "%d. %s\n", i+1, orDefault(tr.Name, defaultName))
		if tr.TweetVolume > 0 {
			fmt.Fprintf(&b, "   Tweet volume: %s\n", humanize.Comma(tr.TweetVolume))
		}
		if tr.Description != "" {
			fmt.Fprintf(&b, "   %s\n", tr.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ThreadContext renders the conversation around a tweet: ancestors,
// the tweet itself, then replies, each section only when populated.
func ThreadContext(tc *twitterapi.ThreadContext) string {
	if tc == nil || (len(tc.Before) == 0 && tc.MainTweet == nil && len(tc.After) == 0) {
		return "No thread context available"
	}

	var b strings.Builder
	b.WriteString("Thread context:\n\n")

	if len(tc.Before) > 0 {
		b.WriteString("Earlier in thread:\n\n")
		b.WriteString(TweetItems(tc.Before, true))
	}
	if tc.MainTweet != nil {
		b.WriteString("Main tweet:\n\n")
		b.WriteString(Tweet(tc.MainTweet))
		b.WriteString("\n\n")
	}
	if len(tc.After) > 0 {
		b.WriteString("Replies:\n\n")
		b.WriteString(TweetItems(tc.After, true))
	}

	return b.String()
}

// PaginationHint returns the trailing more-results line, or "" unless
// both conditions hold: another page exists and a cursor was returned.
func PaginationHint(hasNext bool, cursor string) string {
	if !hasNext || cursor == "" {
		return ""
	}
	return fmt.Sprintf("\nMore results available. Use cursor: %s\n", cursor)
}
