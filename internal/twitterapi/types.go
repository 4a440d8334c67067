package twitterapi

// User is a twitterapi.io user profile. Optional fields decode to their
// zero values; display defaults are applied by the format package.
type User struct {
	ID             string `json:"id"`
	UserName       string `json:"userName"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	Followers      int    `json:"followers"`
	Following      int    `json:"following"`
	StatusesCount  int    `json:"statusesCount"`
	MediaCount     int    `json:"mediaCount"`
	CreatedAt      string `json:"createdAt"`
	IsBlueVerified bool   `json:"isBlueVerified"`
}

// Hashtag is a single hashtag entity attached to a tweet.
type Hashtag struct {
	Text string `json:"text"`
}

// Entities holds the tweet entities we render. The upstream object
// carries more (urls, mentions, symbols) but only hashtags surface
// in formatted output.
type Entities struct {
	Hashtags []Hashtag `json:"hashtags"`
}

// Tweet is a twitterapi.io tweet. CreatedAt is an opaque timestamp
// string passed through verbatim, never parsed.
type Tweet struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	CreatedAt    string   `json:"createdAt"`
	LikeCount    int      `json:"likeCount"`
	RetweetCount int      `json:"retweetCount"`
	ReplyCount   int      `json:"replyCount"`
	Author       User     `json:"author"`
	Entities     Entities `json:"entities"`
}

// Trend is a trending topic. TweetVolume and Description are optional.
type Trend struct {
	Name        string `json:"name"`
	TweetVolume int64  `json:"tweet_volume"`
	Description string `json:"description"`
}

// TweetsPage is a page of tweets with optional pagination state.
// NextCursor is an opaque token: stored and replayed verbatim only.
type TweetsPage struct {
	Tweets      []Tweet `json:"tweets"`
	HasNextPage bool    `json:"has_next_page"`
	NextCursor  string  `json:"next_cursor"`
}

// UsersPage is a page of users with optional pagination state.
type UsersPage struct {
	Users       []User `json:"users"`
	HasNextPage bool   `json:"has_next_page"`
	NextCursor  string `json:"next_cursor"`
}

// UserResponse wraps the single-user /user/info endpoint.
type UserResponse struct {
	Data *User `json:"data"`
}

// ThreadContext is the surrounding conversation of a tweet: ancestors
// in Before, the tweet itself in MainTweet, replies in After.
type ThreadContext struct {
	Before    []Tweet `json:"before"`
	MainTweet *Tweet  `json:"main_tweet"`
	After     []Tweet `json:"after"`
}

// TrendsResponse wraps the /trends endpoint.
type TrendsResponse struct {
	Trends []Trend `json:"trends"`
}
