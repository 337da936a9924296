package model

// Post is one item on a club's social feed.
// swagger:model Post
type Post struct {
	BaseModel
	ClubID   uint   `gorm:"index;type:bigint unsigned;not null" json:"clubId"`
	UserID   uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Body     string `gorm:"type:text;not null" json:"body"`
	Likes    int    `gorm:"default:0" json:"likes"`
	Comments int    `gorm:"default:0" json:"comments"`

	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CommentList []Comment `gorm:"foreignKey:PostID" json:"commentList,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

type Comment struct {
	BaseModel
	PostID uint   `gorm:"index;type:bigint unsigned;not null" json:"postId"`
	UserID uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Body   string `gorm:"type:text;not null" json:"body"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

// PostLike enforces one like per user per post.
type PostLike struct {
	BaseModel
	PostID uint `gorm:"index:idx_post_user,unique;type:bigint unsigned;not null" json:"postId"`
	UserID uint `gorm:"index:idx_post_user,unique;type:bigint unsigned;not null" json:"userId"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
