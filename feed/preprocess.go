package feed

import (
	"time"

	"feedwatch/domain"
	"feedwatch/normalize"

	"github.com/google/uuid"
)

// Post is the wire shape of one feed entry as the provider returns it.
type Post struct {
	ID            string        `json:"id"`
	Text          string        `json:"text"`
	AuthorID      string        `json:"author_id"`
	CreatedAt     time.Time     `json:"created_at"`
	PublicMetrics PublicMetrics `json:"public_metrics"`
}

type PublicMetrics struct {
	LikeCount    int `json:"like_count"`
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
}

// ToContentItem prepares a raw post for analysis. Hashtags and mentions are
// lifted into metadata while the text itself stays untouched; the engine's
// normalizer owns text cleaning.
func (p Post) ToContentItem() domain.ContentItem {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		id = uuid.New()
	}
	return domain.ContentItem{
		ID:       id,
		Text:     p.Text,
		Modality: domain.FeedPostModality,
		Author:   p.AuthorID,
		PostedAt: p.CreatedAt,
		Engagement: domain.Engagement{
			Likes:   p.PublicMetrics.LikeCount,
			Shares:  p.PublicMetrics.RetweetCount,
			Replies: p.PublicMetrics.ReplyCount,
		},
		Hashtags: normalize.ExtractHashtags(p.Text),
		Mentions: normalize.ExtractMentions(p.Text),
	}
}
