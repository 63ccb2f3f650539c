package domain

import (
	"time"

	"github.com/google/uuid"
)

type Modality string

const (
	TextModality     Modality = "text"
	ImageModality    Modality = "image"
	AudioModality    Modality = "audio"
	VideoModality    Modality = "video"
	FeedPostModality Modality = "feed_post"
)

type ScriptFamily string

const (
	LatinScript      ScriptFamily = "latin"
	DevanagariScript ScriptFamily = "devanagari"
	BengaliScript    ScriptFamily = "bengali"
	ArabicScript     ScriptFamily = "arabic"
	UnknownScript    ScriptFamily = "unknown"
)

// Engagement carries the public counters a feed source exposes for a post.
type Engagement struct {
	Likes   int
	Shares  int
	Replies int
}

// ContentItem is one analyzable unit of content. It is never mutated after
// ingestion; the pipeline only derives new values from it.
type ContentItem struct {
	ID         uuid.UUID
	Text       string
	Modality   Modality
	Author     string
	PostedAt   time.Time
	Engagement Engagement
	Hashtags   []string
	Mentions   []string
}

func NewContentItem(text string, modality Modality) ContentItem {
	return ContentItem{
		ID:       uuid.New(),
		Text:     text,
		Modality: modality,
	}
}

// NormalizedText is the cleaned view of a ContentItem's text, owned by a
// single pipeline invocation.
type NormalizedText struct {
	Text           string
	Lang           string // ISO 639-1, empty when undetermined
	Script         ScriptFamily
	Hashtags       []string
	Mentions       []string
	OriginalLength int
}
