package dto

import "github.com/ideasnet/server/internal/model"

// UpdateProfileRequest uses pointers throughout: absent fields are left
// untouched.
type UpdateProfileRequest struct {
	FirstName *string       `json:"firstName"`
	LastName  *string       `json:"lastName"`
	Bio       *string       `json:"bio"`
	Avatar    *string       `json:"avatar"`
	Skills    *StringOrList `json:"skills"`
	Interests *StringOrList `json:"interests"`
	Location  *string       `json:"location"`
	Website   *string       `json:"website"`
	Linkedin  *string       `json:"linkedin"`
	Twitter   *string       `json:"twitter"`
	Github    *string       `json:"github"`
}

type ProfileCounts struct {
	Ideas    int64 `json:"ideas"`
	Comments int64 `json:"comments"`
	Votes    int64 `json:"votes"`
}

type ProfileResponse struct {
	model.User
	Counts ProfileCounts `json:"_count"`
}
