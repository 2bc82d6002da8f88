package lookup

import (
	"context"
	"errors"

	domain "github.com/example/zzchat/domain/chat"
	"github.com/example/zzchat/modules/chat"
)

const moviePlayerAPI = "https://jx.2s0.cn/player/?url="

// MovieCard is the payload of a movie_card message. Src points at an
// embeddable player page for the original link.
type MovieCard struct {
	Src         string `json:"src"`
	OriginalURL string `json:"original_url"`
}

// MovieAdapter wraps a movie page link into an embeddable player card.
// It has no upstream call; the player resolves the link client side.
type MovieAdapter struct {
	playerURL string
}

func NewMovieAdapter() *MovieAdapter {
	return &MovieAdapter{playerURL: moviePlayerAPI}
}

func (a *MovieAdapter) Lookup(_ context.Context, content string) (*domain.Card, error) {
	_, link := chat.ScanTriggers(content)
	if link == "" {
		return nil, errors.New("请提供电影链接，例如：🎬电影 https://...")
	}
	return &domain.Card{
		Type: domain.TypeMovieCard,
		Content: MovieCard{
			Src:         a.playerURL + link,
			OriginalURL: link,
		},
	}, nil
}
