package format

import (
	"strings"
	"testing"

	"github.com/birdwatch/twitterapi-mcp/internal/twitterapi"
)

func TestTweet_Nil(t *testing.T) {
	if got := Tweet(nil); got != "Tweet not available" {
		t.Errorf("got %q", got)
	}
}

func TestTweet_AllFieldsMissing(t *testing.T) {
	got := Tweet(&twitterapi.Tweet{})
	for _, want := range []string{"@unknown", "(Unknown)", "No content", "Posted at: unknown", "Likes: 0 | Retweets: 0 | Replies: 0"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Hashtags:") {
		t.Error("hashtag line must be absent when there are no hashtags")
	}
}

func TestTweet_Full(t *testing.T) {
	tw := &twitterapi.Tweet{
		Text:         "Hello #gophers",
		CreatedAt:    "Wed Oct 10 20:19:24 +0000 2018",
		LikeCount:    3,
		RetweetCount: 2,
		ReplyCount:   1,
		Author:       twitterapi.User{UserName: "birdfan", Name: "Bird Fan"},
		Entities: twitterapi.Entities{
			Hashtags: []twitterapi.Hashtag{{Text: "gophers"}, {Text: "golang"}},
		},
	}
	got := Tweet(tw)
	if !strings.HasPrefix(got, "Tweet by @birdfan (Bird Fan):") {
		t.Errorf("unexpected header:\n%s", got)
	}
	if !strings.Contains(got, "Hashtags: #gophers #golang") {
		t.Errorf("hashtags not rendered:\n%s", got)
	}
	if !strings.Contains(got, "Likes: 3 | Retweets: 2 | Replies: 1") {
		t.Errorf("counts not rendered:\n%s", got)
	}
}

func TestUser_Nil(t *testing.T) {
	if got := User(nil); got != "User not available" {
		t.Errorf("got %q", got)
	}
}

func TestUser_ProfileBlock(t *testing.T) {
	u := &twitterapi.User{
		UserName:  "twitterapi",
		Name:      "TwitterAPI.io",
		Followers: 100,
		Following: 5,
	}
	got := User(u)
	if !strings.HasPrefix(got, "Twitter Profile: @twitterapi (TwitterAPI.io)") {
		t.Errorf("unexpected header:\n%s", got)
	}
	if !strings.Contains(got, "Followers: 100 | Following: 5") {
		t.Errorf("follower counts not rendered:\n%s", got)
	}
	if strings.Contains(got, "Bio:") || strings.Contains(got, "Location:") {
		t.Error("optional lines must be absent when fields are empty")
	}
	if strings.Contains(got, "Blue Verified") {
		t.Error("verification line must be absent by default")
	}
}

func TestUser_OptionalLines(t *testing.T) {
	u := &twitterapi.User{
		UserName:       "birdfan",
		Name:           "Bird Fan",
		Description:    "Builds things",
		Location:       "Austin, TX",
		IsBlueVerified: true,
	}
	got := User(u)
	for _, want := range []string{"Bio: Builds things", "Location: Austin, TX", "✓ Blue Verified"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestTweetList_EmptySentinel(t *testing.T) {
	if got := TweetList(nil); got != "No tweets available" {
		t.Errorf("got %q", got)
	}
}

func TestTweetItems_OrderingAndIndexing(t *testing.T) {
	tweets := []twitterapi.Tweet{
		{Text: "first"},
		{Text: "second"},
		{Text: "third"},
	}
	got := TweetItems(tweets, false)

	i1 := strings.Index(got, "1. first")
	i2 := strings.Index(got, "2. second")
	i3 := strings.Index(got, "3. third")
	if i1 < 0 || i2 < 0 || i3 < 0 {
		t.Fatalf("entries missing or misnumbered:\n%s", got)
	}
	if !(i1 < i2 && i2 < i3) {
		t.Errorf("input order not preserved:\n%s", got)
	}
}

func TestTweetItems_WithAuthor(t *testing.T) {
	tweets := []twitterapi.Tweet{
		{Text: "hi", Author: twitterapi.User{UserName: "a", Name: "A"}},
	}
	got := TweetItems(tweets, true)
	if !strings.Contains(got, "1. @a (A): hi") {
		t.Errorf("author entry not rendered:\n%s", got)
	}
}

func TestUserItems_Defaults(t *testing.T) {
	got := UserItems([]twitterapi.User{{}})
	if !strings.Contains(got, "1. @unknown (Unknown)") {
		t.Errorf("defaults not applied:\n%s", got)
	}
	if strings.Contains(got, "Bio:") {
		t.Error("bio line must be absent when description is empty")
	}
}

func TestTrends_EmptySentinel(t *testing.T) {
	if got := Trends(nil); got != "No trending topics available" {
		t.Errorf("got %q", got)
	}
}

func TestTrends_VolumeThousandsSeparator(t *testing.T) {
	trends := []twitterapi.Trend{
		{Name: "#Go", TweetVolume: 1234567},
		{Name: "#NoVolume"},
	}
	got := Trends(trends)
	if !strings.Contains(got, "Tweet volume: 1,234,567") {
		t.Errorf("volume not comma-separated:\n%s", got)
	}
	// The zero-volume trend must not render a volume line at all.
	if strings.Count(got, "Tweet volume:") != 1 {
		t.Errorf("expected exactly one volume line:\n%s", got)
	}
}

func TestTrends_Description(t *testing.T) {
	got := Trends([]twitterapi.Trend{{Name: "#Go", Description: "Gopher things"}})
	if !strings.Contains(got, "   Gopher things\n") {
		t.Errorf("description not rendered:\n%s", got)
	}
}

func TestThreadContext_EmptySentinel(t *testing.T) {
	if got := ThreadContext(nil); got != "No thread context available" {
		t.Errorf("got %q", got)
	}
	if got := ThreadContext(&twitterapi.ThreadContext{}); got != "No thread context available" {
		t.Errorf("got %q", got)
	}
}

func TestThreadContext_Sections(t *testing.T) {
	tc := &twitterapi.ThreadContext{
		Before:    []twitterapi.Tweet{{Text: "parent"}},
		MainTweet: &twitterapi.Tweet{Text: "main"},
		After:     []twitterapi.Tweet{{Text: "reply"}},
	}
	got := ThreadContext(tc)
	for _, want := range []string{"Earlier in thread:", "Main tweet:", "Replies:", "parent", "main", "reply"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestThreadContext_OnlyReplies(t *testing.T) {
	tc := &twitterapi.ThreadContext{After: []twitterapi.Tweet{{Text: "reply"}}}
	got := ThreadContext(tc)
	if strings.Contains(got, "Earlier in thread:") || strings.Contains(got, "Main tweet:") {
		t.Errorf("empty sections must be omitted:\n%s", got)
	}
}

func TestPaginationHint(t *testing.T) {
	cases := []struct {
		hasNext bool
		cursor  string
		want    bool
	}{
		{true, "abc", true},
		{true, "", false},
		{false, "abc", false},
		{false, "", false},
	}
	for _, tc := range cases {
		got := PaginationHint(tc.hasNext, tc.cursor)
		if tc.want && !strings.Contains(got, "More results available. Use cursor: abc") {
			t.Errorf("hasNext=%v cursor=%q: expected hint, got %q", tc.hasNext, tc.cursor, got)
		}
		if !tc.want && got != "" {
			t.Errorf("hasNext=%v cursor=%q: expected no hint, got %q", tc.hasNext, tc.cursor, got)
		}
	}
}
