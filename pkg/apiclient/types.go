package apiclient

import "time"

type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email,omitempty"`
	Username      string    `json:"username"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Role          string    `json:"role"`
	Bio           *string   `json:"bio,omitempty"`
	Avatar        *string   `json:"avatar,omitempty"`
	Skills        []string  `json:"skills,omitempty"`
	Interests     []string  `json:"interests,omitempty"`
	Location      *string   `json:"location,omitempty"`
	Website       *string   `json:"website,omitempty"`
	Linkedin      *string   `json:"linkedin,omitempty"`
	Twitter       *string   `json:"twitter,omitempty"`
	Github        *string   `json:"github,omitempty"`
	IsVerified    bool      `json:"isVerified"`
	IsPremium     bool      `json:"isPremium"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type UserSummary struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Avatar    *string `json:"avatar,omitempty"`
}

type ProfileCounts struct {
	Ideas    int64 `json:"ideas"`
	Comments int64 `json:"comments"`
	Votes    int64 `json:"votes"`
}

type Profile struct {
	User
	Counts ProfileCounts `json:"_count"`
}

type AuthResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

type VerifyResponse struct {
	User User `json:"user"`
}

type RegisterInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"`
}

type Idea struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Description   string      `json:"description"`
	Problem       string      `json:"problem"`
	Solution      string      `json:"solution"`
	TargetMarket  *string     `json:"targetMarket,omitempty"`
	BusinessModel *string     `json:"businessModel,omitempty"`
	Tags          []string    `json:"tags"`
	Industry      *string     `json:"industry,omitempty"`
	Technology    *string     `json:"technology,omitempty"`
	IsPublic      bool        `json:"isPublic"`
	AuthorID      string      `json:"authorId"`
	Author        UserSummary `json:"author"`
	CommentCount  int64       `json:"commentCount"`
	VoteCount     int64       `json:"voteCount"`
	UpvoteCount   int64       `json:"upvoteCount"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type IdeaInput struct {
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	Problem       string   `json:"problem,omitempty"`
	Solution      string   `json:"solution,omitempty"`
	TargetMarket  *string  `json:"targetMarket,omitempty"`
	BusinessModel *string  `json:"businessModel,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Industry      *string  `json:"industry,omitempty"`
	Technology    *string  `json:"technology,omitempty"`
	IsPublic      *bool    `json:"isPublic,omitempty"`
}

type Comment struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	IdeaID    string      `json:"ideaId"`
	ParentID  *string     `json:"parentId,omitempty"`
	AuthorID  string      `json:"authorId"`
	Author    UserSummary `json:"author"`
	Type      string      `json:"type"`
	IsDeleted bool        `json:"isDeleted"`
	IsEdited  bool        `json:"isEdited"`
	Replies   []Comment   `json:"replies,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type CommentInput struct {
	Content  string `json:"content"`
	IdeaID   string `json:"ideaId"`
	ParentID string `json:"parentId,omitempty"`
	Type     string `json:"type,omitempty"`
}

type Vote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	IdeaID    string    `json:"ideaId"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

type Message struct {
	ID         string      `json:"id"`
	SenderID   string      `json:"senderId"`
	ReceiverID string      `json:"receiverId"`
	Content    string      `json:"content"`
	IsRead     bool        `json:"isRead"`
	Sender     UserSummary `json:"sender"`
	Receiver   UserSummary `json:"receiver"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type Conversation struct {
	User        UserSummary `json:"user"`
	LastMessage *Message    `json:"lastMessage"`
	UnreadCount int64       `json:"unreadCount"`
}

type Notification struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	ActorID   *string      `json:"actorId,omitempty"`
	Actor     *UserSummary `json:"actor,omitempty"`
	Type      string       `json:"type"`
	Content   string       `json:"content"`
	IsRead    bool         `json:"isRead"`
	CreatedAt time.Time    `json:"createdAt"`
}

type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int64          `json:"unreadCount"`
}

type ProfileInput struct {
	FirstName *string  `json:"firstName,omitempty"`
	LastName  *string  `json:"lastName,omitempty"`
	Bio       *string  `json:"bio,omitempty"`
	Avatar    *string  `json:"avatar,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Website   *string  `json:"website,omitempty"`
	Linkedin  *string  `json:"linkedin,omitempty"`
	Twitter   *string  `json:"twitter,omitempty"`
	Github    *string  `json:"github,omitempty"`
}
