package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// Auth

func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", input, &resp); err != nil {
		return nil, err
	}
	c.tokens.SetToken(resp.Token)
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.tokens.SetToken(resp.Token)
	return &resp, nil
}

func (c *Client) Verify(ctx context.Context) (*User, error) {
	var resp VerifyResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Ideas

func (c *Client) Ideas(ctx context.Context, search string) ([]Idea, error) {
	path := "/api/ideas"
	key := "ideas"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
		key += "?search=" + search
	}
	var ideas []Idea
	if err := c.getCached(ctx, path, key, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

func (c *Client) Idea(ctx context.Context, slug string) (*Idea, error) {
	var idea Idea
	if err := c.getCached(ctx, "/api/ideas/"+url.PathEscape(slug), "idea:"+slug, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

func (c *Client) CreateIdea(ctx context.Context, input IdeaInput) (*Idea, error) {
	var idea Idea
	if err := c.do(ctx, http.MethodPost, "/api/ideas", input, &idea); err != nil {
		return nil, err
	}
	c.invalidate("ideas", "user-ideas:")
	return &idea, nil
}

func (c *Client) UpdateIdea(ctx context.Context, id string, input IdeaInput) (*Idea, error) {
	var idea Idea
	if err := c.do(ctx, http.MethodPut, "/api/ideas/"+url.PathEscape(id), input, &idea); err != nil {
		return nil, err
	}
	c.invalidate("ideas", "idea:", "user-ideas:")
	return &idea, nil
}

func (c *Client) DeleteIdea(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/ideas/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	c.invalidate("ideas", "idea:", "user-ideas:")
	return nil
}

// Comments

func (c *Client) Comments(ctx context.Context, ideaID string) ([]Comment, error) {
	var comments []Comment
	if err := c.getCached(ctx, "/api/comments/idea/"+url.PathEscape(ideaID), "comments:"+ideaID, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, input CommentInput) (*Comment, error) {
	var comment Comment
	if err := c.do(ctx, http.MethodPost, "/api/comments", input, &comment); err != nil {
		return nil, err
	}
	c.invalidate("comments:" + input.IdeaID)
	return &comment, nil
}

func (c *Client) UpdateComment(ctx context.Context, id, content string) (*Comment, error) {
	body := map[string]string{"content": content}
	var comment Comment
	if err := c.do(ctx, http.MethodPut, "/api/comments/"+url.PathEscape(id), body, &comment); err != nil {
		return nil, err
	}
	c.invalidate("comments:")
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/comments/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	c.invalidate("comments:")
	return nil
}

// Votes

func (c *Client) AddVote(ctx context.Context, ideaID, voteType string) error {
	body := map[string]string{"type": voteType}
	if err := c.do(ctx, http.MethodPost, "/api/votes/idea/"+url.PathEscape(ideaID), body, nil); err != nil {
		return err
	}
	c.invalidate("votes:"+ideaID, "ideas", "idea:")
	return nil
}

func (c *Client) RemoveVote(ctx context.Context, ideaID, voteType string) error {
	path := "/api/votes/idea/" + url.PathEscape(ideaID) + "?type=" + url.QueryEscape(voteType)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	c.invalidate("votes:"+ideaID, "ideas", "idea:")
	return nil
}

func (c *Client) UserVotes(ctx context.Context, ideaID string) ([]Vote, error) {
	var votes []Vote
	if err := c.do(ctx, http.MethodGet, "/api/votes/idea/"+url.PathEscape(ideaID)+"/user", nil, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

func (c *Client) VoteCounts(ctx context.Context, ideaID string) (map[string]int64, error) {
	var counts map[string]int64
	if err := c.getCached(ctx, "/api/votes/idea/"+url.PathEscape(ideaID), "votes:"+ideaID, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// Messages

func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	var conversations []Conversation
	if err := c.do(ctx, http.MethodGet, "/api/messages/conversations", nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (c *Client) Messages(ctx context.Context, userID string) ([]Message, error) {
	var messages []Message
	if err := c.do(ctx, http.MethodGet, "/api/messages/user/"+url.PathEscape(userID), nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *Client) SendMessage(ctx context.Context, receiverID, content string) (*Message, error) {
	body := map[string]string{"receiverId": receiverID, "content": content}
	var message Message
	if err := c.do(ctx, http.MethodPost, "/api/messages", body, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *Client) MarkConversationRead(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPut, "/api/messages/read/"+url.PathEscape(userID), nil, nil)
}

// Notifications

func (c *Client) Notifications(ctx context.Context) (*NotificationList, error) {
	var list NotificationList
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) UnreadNotificationCount(ctx context.Context) (int64, error) {
	var resp struct {
		Count int64 `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notifications/unread-count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/read-all", nil, nil)
}

// Users

func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UserByUsername(ctx context.Context, username string) (*Profile, error) {
	var profile Profile
	if err := c.getCached(ctx, "/api/users/"+url.PathEscape(username), "user:"+username, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UserIdeas(ctx context.Context, userID string) ([]Idea, error) {
	var ideas []Idea
	if err := c.getCached(ctx, "/api/users/"+url.PathEscape(userID)+"/ideas", "user-ideas:"+userID, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

func (c *Client) UpdateProfile(ctx context.Context, input ProfileInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/api/users/me", input, &user); err != nil {
		return nil, err
	}
	c.invalidate("user:")
	return &user, nil
}
