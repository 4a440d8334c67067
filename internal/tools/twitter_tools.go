package tools

import (
	"context"
	"fmt"

	"github.com/birdwatch/twitterapi-mcp/internal/format"
)

func (r *Registry) registerBuiltins() {
	r.Register(&Tool{
		Name:        "get_tweet",
		Description: "Get a tweet by its ID.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tweet_id": map[string]any{
					"type":        "string",
					"description": "The ID of the tweet to retrieve",
				},
			},
			"required": []string{"tweet_id"},
		},
		Failure: "retrieving tweet",
		Handler: r.handleGetTweet,
	})

	r.Register(&Tool{
		Name:        "get_user_profile",
		Description: "Get a Twitter user's profile information.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"username": map[string]any{
					"type":        "string",
					"description": "The Twitter username without the @ symbol",
				},
			},
			"required": []string{"username"},
		},
		Failure: "retrieving user profile",
		Handler: r.handleGetUserProfile,
	})

	r.Register(&Tool{
		Name:        "get_users_by_ids",
		Description: "Get multiple Twitter user profiles by their numeric IDs in one call.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_ids": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Numeric user IDs to look up",
				},
			},
			"required": []string{"user_ids"},
		},
		Failure: "retrieving user profiles",
		Handler: r.handleGetUsersByIDs,
	})

	r.Register(&Tool{
		Name:        "get_user_recent_tweets",
		Description: "Get a user's recent tweets.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"username": map[string]any{
					"type":        "string",
					"description": "The Twitter username without the @ symbol",
				},
				"count": map[string]any{
					"type":        "integer",
					"description": "Number of tweets to retrieve (default: 10, max: 100)",
				},
			},
			"required": []string{"username"},
		},
		Failure: "retrieving tweets",
		Handler: r.handleGetUserRecentTweets,
	})

	r.Register(&Tool{
		Name:        "get_user_followers",
		Description: "Get a list of users who follow the specified user.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"username": map[string]any{
					"type":        "string",
					"description": "The Twitter username without the @ symbol",
				},
				"count": map[string]any{
					"type":        "integer",
					"description": "Number of followers to retrieve (default: 10, max: 50)",
				},
			},
			"required": []string{"username"},
		},
		Failure: "retrieving followers",
		Handler: r.handleGetUserFollowers,
	})

	r.Register(&Tool{
		Name:        "get_user_following",
		Description: "Get a list of users that the specified user follows.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"username": map[string]any{
					"type":        "string",
					"description": "The Twitter username without the @ symbol",
				},
				"count": map[string]any{
					"type":        "integer",
					"description": "Number of following users to retrieve (default: 10, max: 50)",
				},
			},
			"required": []string{"username"},
		},
		Failure: "retrieving following",
		Handler: r.handleGetUserFollowing,
	})

	r.Register(&Tool{
		Name:        "get_user_mentions",
		Description: "Get recent tweets mentioning the specified user.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"username": map[string]any{
					"type":        "string",
					"description": "The Twitter username without the @ symbol",
				},
				"count": map[string]any{
					"type":        "integer",
					"description": "Number of mentions to retrieve (default: 10, max: 50)",
				},
				"cursor": map[string]any{
					"type":        "string",
					"description": "Pagination cursor from previous results",
				},
				"since_time": map[string]any{
					"type":        "integer",
					"description": "Unix timestamp; only mentions after this time",
				},
				"until_time": map[string]any{
					"type":        "integer",
					"description": "Unix timestamp; only mentions before this time",
				},
			},
			"required": []string{"username"},
		},
		Failure: "retrieving mentions",
		Handler: r.handleGetUserMentions,
	})

	r.Register(&Tool{
		Name:        "search_tweets",
		Description: "Search for tweets based on a query. Supports Twitter search operators.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query (can use Twitter search operators)",
				},
				"query_type": map[string]any{
					"type":        "string",
					"description": "Type of search, either \"Latest\" or \"Top\" (default: \"Latest\")",
				},
				"count": map[string]any{
					"type":        "integer",
					"description": "Number of results to return (default: 10, max: 50)",
				},
				"cursor": map[string]any{
					"type":        "string",
					"description": "Pagination cursor from previous search results",
				},
			},
			"required": []string{"query"},
		},
		Failure: "searching tweets",
		Handler: r.handleSearchTweets,
	})

	r.Register(&Tool{
		Name:        "get_tweet_replies",
		Description: "Get replies to a tweet.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tweet_id": map[string]any{
					"type":        "string",
					"description": "The ID of the tweet",
				},
				"count": map[string]any{
					"type":        "integer",
					"description": "Number of replies to retrieve (default: 10, max: 50)",
				},
			},
			"required": []string{"tweet_id"},
		},
		Failure: "retrieving replies",
		Handler: r.handleGetTweetReplies,
	})

	r.Register(&Tool{
		Name:        "get_tweet_quotes",
		Description: "Get quote tweets of a tweet.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tweet_id": map[string]any{
					"type":        "string",
					"description": "The ID of the tweet",
				},
				"count": map[string]any{
					"type":        "integer",
					"description": "Number of quotes to retrieve (default: 10, max: 50)",
				},
			},
			"required": []string{"tweet_id"},
		},
		Failure: "retrieving quotes",
		Handler: r.handleGetTweetQuotes,
	})

	r.Register(&Tool{
		Name:        "get_tweet_retweeters",
		Description: "Get users who retweeted a tweet.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tweet_id": map[string]any{
					"type":        "string",
					"description": "The ID of the tweet",
				},
				"count": map[string]any{
					"type":        "integer",
					"description": "Number of retweeters to retrieve (default: 10, max: 50)",
				},
			},
			"required": []string{"tweet_id"},
		},
		Failure: "retrieving retweeters",
		Handler: r.handleGetTweetRetweeters,
	})

	r.Register(&Tool{
		Name:        "get_tweet_thread_context",
		Description: "Get the conversation thread around a tweet: earlier tweets, the tweet itself, and replies.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tweet_id": map[string]any{
					"type":        "string",
					"description": "The ID of the tweet",
				},
			},
			"required": []string{"tweet_id"},
		},
		Failure: "retrieving thread context",
		Handler: r.handleGetTweetThreadContext,
	})

	r.Register(&Tool{
		Name:        "get_list_tweets",
		Description: "Get tweets from a Twitter list.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"list_id": map[string]any{
					"type":        "string",
					"description": "The ID of the Twitter list",
				},
				"count": map[string]any{
					"type":        "integer",
					"description": "Number of tweets to retrieve (default: 10, max: 50)",
				},
			},
			"required": []string{"list_id"},
		},
		Failure: "retrieving list tweets",
		Handler: r.handleGetListTweets,
	})

	r.Register(&Tool{
		Name:        "get_trends",
		Description: "Get current trending topics on Twitter.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Failure: "retrieving trends",
		Handler: r.handleGetTrends,
	})
}

// Tool handlers

func (r *Registry) handleGetTweet(ctx context.Context, args map[string]any) (string, error) {
	tweetID := stringArg(args, "tweet_id")
	if tweetID == "" {
		return "", fmt.Errorf("tweet_id is required")
	}

	page, err := r.client.GetTweets(ctx, tweetID)
	if err != nil {
		return "", err
	}
	if len(page.Tweets) == 0 {
		return "Tweet not found", nil
	}
	return format.Tweet(&page.Tweets[0]), nil
}

func (r *Registry) handleGetUserProfile(ctx context.Context, args map[string]any) (string, error) {
	username := stringArg(args, "username")
	if username == "" {
		return "", fmt.Errorf("username is required")
	}

	resp, err := r.client.GetUser(ctx, username)
	if err != nil {
		return "", err
	}
	if resp.Data == nil {
		return fmt.Sprintf("User @%s not found", username), nil
	}
	return format.User(resp.Data), nil
}

func (r *Registry) handleGetUsersByIDs(ctx context.Context, args map[string]any) (string, error) {
	ids := stringListArg(args, "user_ids")
	if len(ids) == 0 {
		return "", fmt.Errorf("user_ids is required")
	}

	page, err := r.client.GetUsersByIDs(ctx, ids)
	if err != nil {
		return "", err
	}
	if len(page.Users) == 0 {
		return "No users found", nil
	}

	return fmt.Sprintf("Users (%d):\n\n%s", len(page.Users), format.UserItems(page.Users)), nil
}

func (r *Registry) handleGetUserRecentTweets(ctx context.Context, args map[string]any) (string, error) {
	username := stringArg(args, "username")
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	count := countArg(args, DefaultCount, r.maxUserTweets)

	page, err := r.client.GetUserTweets(ctx, username, count)
	if err != nil {
		return "", err
	}
	if len(page.Tweets) == 0 {
		return fmt.Sprintf("No tweets found for @%s", username), nil
	}

	out := fmt.Sprintf("Recent tweets by @%s:\n\n", username)
	out += format.TweetItems(page.Tweets, false)
	out += format.PaginationHint(page.HasNextPage, page.NextCursor)
	return out, nil
}

func (r *Registry) handleGetUserFollowers(ctx context.Context, args map[string]any) (string, error) {
	username := stringArg(args, "username")
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	count := countArg(args, DefaultCount, MaxCount)

	page, err := r.client.GetUserFollowers(ctx, username, count)
	if err != nil {
		return "", err
	}
	if len(page.Users) == 0 {
		return fmt.Sprintf("No followers found for @%s", username), nil
	}

	out := fmt.Sprintf("Followers of @%s:\n\n", username)
	out += format.UserItems(page.Users)
	out += format.PaginationHint(page.HasNextPage, page.NextCursor)
	return out, nil
}

func (r *Registry) handleGetUserFollowing(ctx context.Context, args map[string]any) (string, error) {
	username := stringArg(args, "username")
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	count := countArg(args, DefaultCount, MaxCount)

	page, err := r.client.GetUserFollowings(ctx, username, count)
	if err != nil {
		return "", err
	}
	if len(page.Users) == 0 {
		return fmt.Sprintf("@%s is not following anyone", username), nil
	}

	out := fmt.Sprintf("Accounts @%s is following:\n\n", username)
	out += format.UserItems(page.Users)
	out += format.PaginationHint(page.HasNextPage, page.NextCursor)
	return out, nil
}

func (r *Registry) handleGetUserMentions(ctx context.Context, args map[string]any) (string, error) {
	username := stringArg(args, "username")
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	count := countArg(args, DefaultCount, MaxCount)
	cursor := stringArg(args, "cursor")
	sinceTime := int64Arg(args, "since_time")
	untilTime := int64Arg(args, "until_time")

	page, err := r.client.GetUserMentions(ctx, username, count, cursor, sinceTime, untilTime)
	if err != nil {
		return "", err
	}
	if len(page.Tweets) == 0 {
		return fmt.Sprintf("No mentions found for @%s", username), nil
	}

	out := fmt.Sprintf("Mentions of @%s:\n\n", username)
	out += format.TweetItems(page.Tweets, true)
	out += format.PaginationHint(page.HasNextPage, page.NextCursor)
	return out, nil
}

func (r *Registry) handleSearchTweets(ctx context.Context, args map[string]any) (string, error) {
	query := stringArg(args, "query")
	if query == "" {
		return "", fmt.Errorf("query is required")
	}
	queryType := coerceQueryType(stringArg(args, "query_type"))
	count := countArg(args, DefaultCount, MaxCount)
	cursor := stringArg(args, "cursor")

	page, err := r.client.SearchTweets(ctx, query, queryType, count, cursor)
	if err != nil {
		return "", err
	}
	if len(page.Tweets) == 0 {
		return fmt.Sprintf("No tweets found for query: %s", query), nil
	}

	out := fmt.Sprintf("Search results for %q (%s):\n\n", query, queryType)
	out += format.TweetItems(page.Tweets, true)
	out += format.PaginationHint(page.HasNextPage, page.NextCursor)
	return out, nil
}

func (r *Registry) handleGetTweetReplies(ctx context.Context, args map[string]any) (string, error) {
	tweetID := stringArg(args, "tweet_id")
	if tweetID == "" {
		return "", fmt.Errorf("tweet_id is required")
	}
	count := countArg(args, DefaultCount, MaxCount)

	page, err := r.client.GetTweetReplies(ctx, tweetID, count)
	if err != nil {
		return "", err
	}
	if len(page.Tweets) == 0 {
		return "No replies found for this tweet", nil
	}

	out := fmt.Sprintf("Replies to tweet %s:\n\n", tweetID)
	out += format.TweetItems(page.Tweets, true)
	out += format.PaginationHint(page.HasNextPage, page.NextCursor)
	return out, nil
}

func (r *Registry) handleGetTweetQuotes(ctx context.Context, args map[string]any) (string, error) {
	tweetID := stringArg(args, "tweet_id")
	if tweetID == "" {
		return "", fmt.Errorf("tweet_id is required")
	}
	count := countArg(args, DefaultCount, MaxCount)

	page, err := r.client.GetTweetQuotes(ctx, tweetID, count)
	if err != nil {
		return "", err
	}
	if len(page.Tweets) == 0 {
		return "No quotes found for this tweet", nil
	}

	out := fmt.Sprintf("Quotes of tweet %s:\n\n", tweetID)
	out += format.TweetItems(page.Tweets, true)
	out += format.PaginationHint(page.HasNextPage, page.NextCursor)
	return out, nil
}

func (r *Registry) handleGetTweetRetweeters(ctx context.Context, args map[string]any) (string, error) {
	tweetID := stringArg(args, "tweet_id")
	if tweetID == "" {
		return "", fmt.Errorf("tweet_id is required")
	}
	count := countArg(args, DefaultCount, MaxCount)

	page, err := r.client.GetTweetRetweeters(ctx, tweetID, count)
	if err != nil {
		return "", err
	}
	if len(page.Users) == 0 {
		return "No retweeters found for this tweet", nil
	}

	out := fmt.Sprintf("Users who retweeted tweet %s:\n\n", tweetID)
	out += format.UserItems(page.Users)
	out += format.PaginationHint(page.HasNextPage, page.NextCursor)
	return out, nil
}

func (r *Registry) handleGetTweetThreadContext(ctx context.Context, args map[string]any) (string, error) {
	tweetID := stringArg(args, "tweet_id")
	if tweetID == "" {
		return "", fmt.Errorf("tweet_id is required")
	}

	tc, err := r.client.GetThreadContext(ctx, tweetID)
	if err != nil {
		return "", err
	}
	return format.ThreadContext(tc), nil
}

func (r *Registry) handleGetListTweets(ctx context.Context, args map[string]any) (string, error) {
	listID := stringArg(args, "list_id")
	if listID == "" {
		return "", fmt.Errorf("list_id is required")
	}
	count := countArg(args, DefaultCount, MaxCount)

	page, err := r.client.GetListTweets(ctx, listID, count)
	if err != nil {
		return "", err
	}
	if len(page.Tweets) == 0 {
		return "No tweets found in this list", nil
	}

	out := fmt.Sprintf("Tweets from list %s:\n\n", listID)
	out += format.TweetItems(page.Tweets, true)
	out += format.PaginationHint(page.HasNextPage, page.NextCursor)
	return out, nil
}

func (r *Registry) handleGetTrends(ctx context.Context, _ map[string]any) (string, error) {
	resp, err := r.client.GetTrends(ctx)
	if err != nil {
		return "", err
	}
	return format.Trends(resp.Trends), nil
}
